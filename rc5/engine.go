// Package rc5 implements the RC5 block cipher for 8, 16, 32, 64 and 128-bit
// words with a configurable number of rounds and key size.
//
// Engine is generic over the word type, so a width mismatch is a compile
// error. New picks the word type from a runtime Config for hosts that only
// know the width at run time.
package rc5

import (
	"crypto/cipher"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cloudflare/rc5/magic"
	"github.com/cloudflare/rc5/word"
)

const (
	minRounds  = 1
	maxRounds  = 255
	minKeySize = 1
	maxKeySize = 255
)

type options struct {
	log           *zerolog.Logger
	cacheCapacity int
	cache         bool
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger used for debug events. The default discards them.
func WithLogger(log *zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithScheduleCache keeps up to capacity expanded keys so repeated calls with
// the same key skip key expansion. A capacity <= 0 uses the default.
func WithScheduleCache(capacity int) Option {
	return func(o *options) {
		o.cache = true
		o.cacheCapacity = capacity
	}
}

// Engine is RC5-w/r/b where w is the width of W.
type Engine[W word.Word[W]] struct {
	rounds  int
	keySize int
	p, q    W
	cache   *scheduleCache[W]
	log     *zerolog.Logger

	encrypted, decrypted, expansions prometheus.Counter
}

// NewEngine creates an engine running rounds rounds with keySize byte keys,
// seeding the round key table with p and q.
func NewEngine[W word.Word[W]](rounds, keySize int, p, q W, opts ...Option) (*Engine[W], error) {
	if rounds < minRounds || rounds > maxRounds {
		return nil, newConfigurationError(ErrInvalidRounds, "got %d", rounds)
	}
	if keySize < minKeySize || keySize > maxKeySize {
		return nil, newConfigurationError(ErrInvalidKeySize, "got %d", keySize)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		nop := zerolog.Nop()
		o.log = &nop
	}
	label := strconv.Itoa(word.Bits[W]())
	e := &Engine[W]{
		rounds:     rounds,
		keySize:    keySize,
		p:          p,
		q:          q,
		log:        o.log,
		encrypted:  blocksProcessed.WithLabelValues("encrypt", label),
		decrypted:  blocksProcessed.WithLabelValues("decrypt", label),
		expansions: keyExpansions.WithLabelValues(label),
	}
	if o.cache {
		e.cache = newScheduleCache[W](o.cacheCapacity)
	}
	e.log.Debug().
		Int("word_size", word.Bits[W]()).
		Int("rounds", rounds).
		Int("key_size", keySize).
		Str("p", p.String()).
		Str("q", q.String()).
		Bool("schedule_cache", o.cache).
		Msg("Created RC5 engine")
	return e, nil
}

// NewStandardEngine creates an engine seeded with the standard magic
// constants for the width of W.
func NewStandardEngine[W word.Word[W]](rounds, keySize int, opts ...Option) (*Engine[W], error) {
	constants, err := magic.Lookup(word.Bits[W]())
	if err != nil {
		return nil, asConfigurationError(err)
	}
	p, q, err := parseConstants[W](constants.P, constants.Q)
	if err != nil {
		return nil, err
	}
	return NewEngine[W](rounds, keySize, p, q, opts...)
}

func parseConstants[W word.Word[W]](pHex, qHex string) (W, W, error) {
	var zero W
	p, err := word.FromHex[W](pHex)
	if err != nil {
		return zero, zero, newConfigurationError(ErrInvalidConstant, "P: %v", err)
	}
	q, err := word.FromHex[W](qHex)
	if err != nil {
		return zero, zero, newConfigurationError(ErrInvalidConstant, "Q: %v", err)
	}
	return p, q, nil
}

func (e *Engine[W]) WordSize() int  { return word.Bits[W]() }
func (e *Engine[W]) Rounds() int    { return e.rounds }
func (e *Engine[W]) KeySize() int   { return e.keySize }
func (e *Engine[W]) BlockSize() int { return 2 * word.Bytes[W]() }

// Constants returns the P and Q this engine was seeded with.
func (e *Engine[W]) Constants() magic.Constants {
	return magic.Constants{Width: word.Bits[W](), P: e.p.String(), Q: e.q.String()}
}

// ExpandKey turns key into the round key table.
func (e *Engine[W]) ExpandKey(key []byte) (*RoundKeys[W], error) {
	if len(key) != e.keySize {
		return nil, KeyLengthError{Want: e.keySize, Got: len(key)}
	}
	return e.expand(key), nil
}

// RoundKeyStrings returns the round key table for key as hex words.
func (e *Engine[W]) RoundKeyStrings(key []byte) ([]string, error) {
	table, err := e.ExpandKey(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, table.Len())
	for i, w := range table.s {
		out[i] = w.String()
	}
	return out, nil
}

func (e *Engine[W]) expand(key []byte) *RoundKeys[W] {
	u := word.Bytes[W]()
	c := word.DivCeil(len(key), u)

	// L is filled from the last key byte down. Each word holds at most u
	// bytes, so rotating by 8 never wraps a set bit and acts as a shift.
	l := make([]W, c)
	eight := word.Of[W](8)
	for i := len(key) - 1; i >= 0; i-- {
		l[i/u] = l[i/u].RotateLeft(eight).Add(word.Of[W](uint64(key[i])))
	}

	t := 2 * (e.rounds + 1)
	s := make([]W, t)
	s[0] = e.p
	for i := 1; i < t; i++ {
		s[i] = s[i-1].Add(e.q)
	}

	n := 3 * t
	if c > t {
		n = 3 * c
	}
	three := word.Of[W](3)
	var a, b W
	for k, i, j := 0, 0, 0; k < n; k++ {
		a = s[i].Add(a).Add(b).RotateLeft(three)
		s[i] = a
		ab := a.Add(b)
		b = l[j].Add(ab).RotateLeft(ab)
		l[j] = b
		i = (i + 1) % t
		j = (j + 1) % c
	}

	e.expansions.Inc()
	return &RoundKeys[W]{s: s}
}

func (e *Engine[W]) schedule(key []byte) (*RoundKeys[W], error) {
	if len(key) != e.keySize {
		return nil, KeyLengthError{Want: e.keySize, Got: len(key)}
	}
	if e.cache == nil {
		return e.expand(key), nil
	}
	table, hit := e.cache.getOrExpand(string(key), func() *RoundKeys[W] {
		return e.expand(key)
	})
	if hit {
		scheduleCacheHits.Inc()
	} else {
		scheduleCacheMisses.Inc()
	}
	return table, nil
}

func (e *Engine[W]) checkBlock(block []byte) error {
	if len(block) != e.BlockSize() {
		return BufferBoundsError{Want: e.BlockSize(), Got: len(block)}
	}
	return nil
}

// Encrypt encrypts one block of exactly BlockSize bytes under key.
func (e *Engine[W]) Encrypt(key, block []byte) ([]byte, error) {
	table, err := e.schedule(key)
	if err != nil {
		return nil, err
	}
	if err := e.checkBlock(block); err != nil {
		return nil, err
	}
	ab := word.Parse[W](block)
	ab[0], ab[1] = e.encryptWords(table, ab[0], ab[1])
	return word.Serialize(ab), nil
}

// Decrypt is the inverse of Encrypt.
func (e *Engine[W]) Decrypt(key, block []byte) ([]byte, error) {
	table, err := e.schedule(key)
	if err != nil {
		return nil, err
	}
	if err := e.checkBlock(block); err != nil {
		return nil, err
	}
	ab := word.Parse[W](block)
	ab[0], ab[1] = e.decryptWords(table, ab[0], ab[1])
	return word.Serialize(ab), nil
}

func (e *Engine[W]) encryptWords(table *RoundKeys[W], a, b W) (W, W) {
	s := table.s
	a = a.Add(s[0])
	b = b.Add(s[1])
	for i := 1; i <= e.rounds; i++ {
		a = a.Xor(b).RotateLeft(b).Add(s[2*i])
		b = b.Xor(a).RotateLeft(a).Add(s[2*i+1])
	}
	e.encrypted.Inc()
	return a, b
}

func (e *Engine[W]) decryptWords(table *RoundKeys[W], a, b W) (W, W) {
	s := table.s
	for i := e.rounds; i >= 1; i-- {
		b = b.Sub(s[2*i+1]).RotateRight(a).Xor(a)
		a = a.Sub(s[2*i]).RotateRight(b).Xor(b)
	}
	e.decrypted.Inc()
	return a.Sub(s[0]), b.Sub(s[1])
}

// Block expands key once and returns it as a cipher.Block. Each call to its
// Encrypt or Decrypt transforms exactly one block.
func (e *Engine[W]) Block(key []byte) (cipher.Block, error) {
	table, err := e.schedule(key)
	if err != nil {
		return nil, err
	}
	return &blockCipher[W]{engine: e, table: table}, nil
}

type blockCipher[W word.Word[W]] struct {
	engine *Engine[W]
	table  *RoundKeys[W]
}

func (b *blockCipher[W]) BlockSize() int { return b.engine.BlockSize() }

// Encrypt and Decrypt write into dst without allocating.
func (b *blockCipher[W]) Encrypt(dst, src []byte) {
	b.checkBuffers(dst, src)
	u := word.Bytes[W]()
	x, y := b.engine.encryptWords(b.table, word.FromLittleEndian[W](src[:u]), word.FromLittleEndian[W](src[u:2*u]))
	x.PutLittleEndian(dst[:u])
	y.PutLittleEndian(dst[u : 2*u])
}

func (b *blockCipher[W]) Decrypt(dst, src []byte) {
	b.checkBuffers(dst, src)
	u := word.Bytes[W]()
	x, y := b.engine.decryptWords(b.table, word.FromLittleEndian[W](src[:u]), word.FromLittleEndian[W](src[u:2*u]))
	x.PutLittleEndian(dst[:u])
	y.PutLittleEndian(dst[u : 2*u])
}

func (b *blockCipher[W]) checkBuffers(dst, src []byte) {
	bs := b.BlockSize()
	if len(src) < bs {
		panic("rc5: input not full block")
	}
	if len(dst) < bs {
		panic("rc5: output not full block")
	}
}
