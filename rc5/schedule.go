package rc5

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cloudflare/rc5/word"
)

// RoundKeys is the expanded key table S[0..2r+1]. It is never modified
// after key expansion, so it may be shared between goroutines.
type RoundKeys[W word.Word[W]] struct {
	s []W
}

// Len returns 2*(rounds+1).
func (k *RoundKeys[W]) Len() int {
	return len(k.s)
}

// At returns S[i].
func (k *RoundKeys[W]) At(i int) W {
	return k.s[i]
}

// Words returns a copy of the table.
func (k *RoundKeys[W]) Words() []W {
	out := make([]W, len(k.s))
	copy(out, k.s)
	return out
}

const defaultScheduleCacheCapacity = 128

// scheduleCache holds round key tables of one engine keyed by the raw key.
// The engine configuration is fixed, so the key alone identifies a table.
type scheduleCache[W word.Word[W]] struct {
	lock     sync.RWMutex
	tables   map[string]*RoundKeys[W]
	capacity int
	expand   singleflight.Group
}

func newScheduleCache[W word.Word[W]](capacity int) *scheduleCache[W] {
	if capacity <= 0 {
		capacity = defaultScheduleCacheCapacity
	}
	return &scheduleCache[W]{
		tables:   make(map[string]*RoundKeys[W], capacity),
		capacity: capacity,
	}
}

func (c *scheduleCache[W]) get(key string) (*RoundKeys[W], bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	table, ok := c.tables[key]
	return table, ok
}

// getOrExpand returns the cached table for key or runs expand once, even
// when several goroutines miss on the same key at the same time.
func (c *scheduleCache[W]) getOrExpand(key string, expand func() *RoundKeys[W]) (*RoundKeys[W], bool) {
	if table, ok := c.get(key); ok {
		return table, true
	}
	v, _, _ := c.expand.Do(key, func() (interface{}, error) {
		if table, ok := c.get(key); ok {
			return table, nil
		}
		table := expand()
		c.put(key, table)
		return table, nil
	})
	return v.(*RoundKeys[W]), false
}

func (c *scheduleCache[W]) put(key string, table *RoundKeys[W]) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if len(c.tables) >= c.capacity {
		c.tables = make(map[string]*RoundKeys[W], c.capacity)
	}
	c.tables[key] = table
}

func (c *scheduleCache[W]) len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.tables)
}
