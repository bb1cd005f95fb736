package rc5

import (
	"crypto/cipher"

	"github.com/rs/zerolog"

	"github.com/cloudflare/rc5/magic"
	"github.com/cloudflare/rc5/word"
)

// Config selects an RC5 variant at run time.
type Config struct {
	WordSize int `yaml:"word-size"` // bits
	Rounds   int `yaml:"rounds"`
	KeySize  int `yaml:"key-size"` // bytes

	// P and Q override the standard magic constants when set, as big-endian hex.
	P string `yaml:"p,omitempty"`
	Q string `yaml:"q,omitempty"`

	CacheSchedules bool `yaml:"cache-schedules,omitempty"`
	CacheCapacity  int  `yaml:"cache-capacity,omitempty"`
}

// Cipher is an Engine with its word type erased.
type Cipher interface {
	WordSize() int
	Rounds() int
	KeySize() int
	BlockSize() int
	Constants() magic.Constants
	RoundKeyStrings(key []byte) ([]string, error)
	Encrypt(key, block []byte) ([]byte, error)
	Decrypt(key, block []byte) ([]byte, error)
	Block(key []byte) (cipher.Block, error)
}

// New creates the engine described by cfg.
func New(cfg Config, log *zerolog.Logger) (Cipher, error) {
	switch cfg.WordSize {
	case 8:
		return newCipher[word.W8](cfg, log)
	case 16:
		return newCipher[word.W16](cfg, log)
	case 32:
		return newCipher[word.W32](cfg, log)
	case 64:
		return newCipher[word.W64](cfg, log)
	case 128:
		return newCipher[word.W128](cfg, log)
	default:
		return nil, newConfigurationError(ErrUnsupportedWordSize, "%d bits, supported sizes are %v", cfg.WordSize, word.Widths)
	}
}

func newCipher[W word.Word[W]](cfg Config, log *zerolog.Logger) (Cipher, error) {
	constants, err := resolveConstants(cfg)
	if err != nil {
		return nil, err
	}
	p, q, err := parseConstants[W](constants.P, constants.Q)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithLogger(log)}
	if cfg.CacheSchedules {
		opts = append(opts, WithScheduleCache(cfg.CacheCapacity))
	}
	e, err := NewEngine[W](cfg.Rounds, cfg.KeySize, p, q, opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// resolveConstants fills in whichever of P and Q the config leaves empty
// from the standard constants for its width.
func resolveConstants(cfg Config) (magic.Constants, error) {
	constants := magic.Constants{Width: cfg.WordSize, P: cfg.P, Q: cfg.Q}
	if constants.P != "" && constants.Q != "" {
		return constants, nil
	}
	standard, err := magic.Lookup(cfg.WordSize)
	if err != nil {
		return magic.Constants{}, asConfigurationError(err)
	}
	if constants.P == "" {
		constants.P = standard.P
	}
	if constants.Q == "" {
		constants.Q = standard.Q
	}
	return constants, nil
}
