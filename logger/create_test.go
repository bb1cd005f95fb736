package logger

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCreateConfig(t *testing.T) {
	cfg := CreateConfig("", DisableTerminalLog, false, "", "")
	assert.Nil(t, cfg.ConsoleConfig)
	assert.Nil(t, cfg.FileConfig)
	assert.Nil(t, cfg.RollingConfig)
	assert.Equal(t, "info", cfg.MinLevel)

	cfg = CreateConfig("debug", EnableTerminalLog, true, "/var/log/rc5", "")
	require.NotNil(t, cfg.ConsoleConfig)
	assert.True(t, cfg.ConsoleConfig.asJSON)
	require.NotNil(t, cfg.RollingConfig)
	assert.Equal(t, "/var/log/rc5", cfg.RollingConfig.Dirname)
	assert.Equal(t, "rc5.log", cfg.RollingConfig.Filename)
	assert.Equal(t, "debug", cfg.MinLevel)

	cfg = CreateConfig("warn", EnableTerminalLog, false, "/var/log/rc5", "/tmp/logs/cipher.log")
	assert.Nil(t, cfg.RollingConfig)
	require.NotNil(t, cfg.FileConfig)
	assert.Equal(t, "/tmp/logs/cipher.log", cfg.FileConfig.Fullpath())

	cfg = CreateConfig("", EnableTerminalLog, false, "", "/tmp/logs/")
	assert.Equal(t, "rc5.log", cfg.FileConfig.Filename)
}

func TestResilientMultiWriterLevel(t *testing.T) {
	var first, second bytes.Buffer
	w := resilientMultiWriter{level: zerolog.WarnLevel, writers: []io.Writer{&first, &second}}
	log := zerolog.New(w)

	log.Info().Msg("dropped")
	assert.Zero(t, first.Len())

	log.Error().Msg("kept")
	assert.Contains(t, first.String(), "kept")
	assert.Equal(t, first.String(), second.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, os.ErrClosed
}

func TestResilientMultiWriterSurvivesFailure(t *testing.T) {
	var out bytes.Buffer
	w := resilientMultiWriter{level: zerolog.DebugLevel, writers: []io.Writer{failingWriter{}, &out}}
	n, err := w.Write([]byte("event\n"))
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "event\n", out.String())
}

func TestCreateJSONConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	console, err := os.Create(filepath.Join(dir, "console"))
	require.NoError(t, err)
	defer console.Close()

	log := Create(&Config{
		ConsoleConfig: &ConsoleConfig{asJSON: true, out: console},
		FileConfig:    &FileConfig{Dirname: filepath.Join(dir, "nested"), Filename: "rc5.log"},
		MinLevel:      "debug",
	})
	log.Debug().Int("rounds", 12).Msg("created")

	consoleOut, err := os.ReadFile(console.Name())
	require.NoError(t, err)
	assert.Contains(t, string(consoleOut), `"rounds":12`)

	fileOut, err := os.ReadFile(filepath.Join(dir, "nested", "rc5.log"))
	require.NoError(t, err)
	assert.Contains(t, string(fileOut), `"message":"created"`)
}

func TestCreateLoggerFromContextBadLevel(t *testing.T) {
	flagSet := flag.NewFlagSet(t.Name(), flag.PanicOnError)
	flagSet.String(LogLevelFlag, "chatty", "")
	flagSet.String(LogFormatFlag, LogFormatDefault, "")
	c := cli.NewContext(cli.NewApp(), flagSet, nil)

	log := CreateLoggerFromContext(c, DisableTerminalLog)
	log.Info().Msg("still logging")
	assert.True(t, levelErrorLogged)
}
