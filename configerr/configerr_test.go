package configerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := New(ErrUnsupportedWidth, "width %d", 12)
	assert.Equal(t, "rc5: configuration error: width 12: unsupported word size", err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedWidth)
	assert.Equal(t, ErrUnsupportedWidth, errors.Cause(err))

	var wrapped error = errors.Wrap(err, "building engine")
	var configErr *Error
	require.ErrorAs(t, wrapped, &configErr)
	assert.Same(t, err, configErr)
}
