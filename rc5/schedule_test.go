package rc5

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudflare/rc5/word"
)

func TestScheduleCacheHit(t *testing.T) {
	cached, err := NewStandardEngine[word.W32](12, 16, WithScheduleCache(4))
	require.NoError(t, err)
	plain, err := NewStandardEngine[word.W32](12, 16)
	require.NoError(t, err)

	key := []byte("0123456789abcdef")
	block := []byte("abcdefgh")

	for i := 0; i < 3; i++ {
		want, err := plain.Encrypt(key, block)
		require.NoError(t, err)
		got, err := cached.Encrypt(key, block)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, cached.cache.len())

	first, err := cached.schedule(key)
	require.NoError(t, err)
	second, err := cached.schedule(key)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestScheduleCacheCapacity(t *testing.T) {
	engine, err := NewStandardEngine[word.W16](8, 4, WithScheduleCache(3))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := engine.Encrypt([]byte(fmt.Sprintf("k%03d", i)), []byte{0, 1, 2, 3})
		require.NoError(t, err)
		assert.LessOrEqual(t, engine.cache.len(), 3)
	}
}

func TestScheduleCacheDefaultCapacity(t *testing.T) {
	c := newScheduleCache[word.W8](0)
	assert.Equal(t, defaultScheduleCacheCapacity, c.capacity)
}

func TestScheduleCacheExpandsOnce(t *testing.T) {
	c := newScheduleCache[word.W64](8)
	table := &RoundKeys[word.W64]{s: []word.W64{1, 2, 3, 4}}

	var calls int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got, _ := c.getOrExpand("key", func() *RoundKeys[word.W64] {
				atomic.AddInt32(&calls, 1)
				return table
			})
			assert.Same(t, table, got)
		}()
	}
	close(start)
	wg.Wait()

	// A goroutine that arrives after the first expansion finished sees the
	// cached table, so there is exactly one call no matter the interleaving.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	got, hit := c.getOrExpand("key", func() *RoundKeys[word.W64] {
		t.Fatal("expanded a cached key")
		return nil
	})
	assert.True(t, hit)
	assert.Same(t, table, got)
}

func TestConcurrentEncrypt(t *testing.T) {
	engine, err := NewStandardEngine[word.W64](20, 8, WithScheduleCache(16))
	require.NoError(t, err)
	reference, err := NewStandardEngine[word.W64](20, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := []byte(fmt.Sprintf("key%05d", i%5))
				block := []byte(fmt.Sprintf("block%011d", g*1000+i))
				got, err := engine.Encrypt(key, block)
				if !assert.NoError(t, err) {
					return
				}
				want, _ := reference.Encrypt(key, block)
				assert.Equal(t, want, got)
				back, err := engine.Decrypt(key, got)
				assert.NoError(t, err)
				assert.Equal(t, block, back)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 5, engine.cache.len())
}

func TestRoundKeysAccessors(t *testing.T) {
	engine, err := NewStandardEngine[word.W32](2, 4)
	require.NoError(t, err)
	table, err := engine.ExpandKey([]byte{0, 0, 0, 0})
	require.NoError(t, err)

	words := table.Words()
	require.Len(t, words, 6)
	for i, w := range words {
		assert.Equal(t, w, table.At(i))
	}
	words[0] = 0
	assert.NotEqual(t, words[0], table.At(0))
}
