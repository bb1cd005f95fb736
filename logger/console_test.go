package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLoggerDuplicateKeys(t *testing.T) {
	r := &bytes.Buffer{}
	logger := zerolog.New(&consoleWriter{out: r}).With().Timestamp().Logger()
	logger.Debug().Int("word_size", 32).Int("rounds", 12).Int("word_size", 64).Msg("log message")

	event, err := r.ReadString('\n')
	require.NoError(t, err)

	assert.Contains(t, event, `"word_size":64`)
	assert.NotContains(t, event, `"word_size":32`)
	assert.Contains(t, event, `"rounds":12`)
	assert.Contains(t, event, `"time":`)
	assert.Contains(t, event, `"level":"debug"`)
}

func TestConsoleWriterRejectsNonJSON(t *testing.T) {
	w := &consoleWriter{out: &bytes.Buffer{}}
	_, err := w.Write([]byte("not json"))
	assert.Error(t, err)
}
