package rc5

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cloudflare/rc5/configerr"
)

var (
	ErrUnsupportedWordSize = configerr.ErrUnsupportedWidth
	ErrInvalidRounds       = errors.New("number of rounds must be between 1 and 255")
	ErrInvalidKeySize      = errors.New("key size must be between 1 and 255 bytes")
	ErrInvalidConstant     = errors.New("invalid magic constant")
)

// ConfigurationError is returned when an engine cannot be built from its
// parameters. The constant deriver returns the same type for a bad width.
type ConfigurationError = configerr.Error

func newConfigurationError(err error, format string, args ...interface{}) *ConfigurationError {
	return configerr.New(err, format, args...)
}

// asConfigurationError passes configuration errors through and classifies
// anything else from the deriver as an unsupported width.
func asConfigurationError(err error) error {
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return err
	}
	return newConfigurationError(ErrUnsupportedWordSize, "%v", err)
}

// KeyLengthError reports a key whose length differs from the configured key size.
type KeyLengthError struct {
	Want, Got int
}

func (e KeyLengthError) Error() string {
	return fmt.Sprintf("rc5: invalid key length %d, expected %d bytes", e.Got, e.Want)
}

// BufferBoundsError reports a block that is not exactly two words long.
type BufferBoundsError struct {
	Want, Got int
}

func (e BufferBoundsError) Error() string {
	return fmt.Sprintf("rc5: invalid block length %d, expected %d bytes", e.Got, e.Want)
}
