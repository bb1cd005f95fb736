package logger

import (
	"io"
	"os"
	"path"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	fallbacklog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnableTerminalLog  = false
	DisableTerminalLog = true

	LogLevelFlag     = "loglevel"
	LogFileFlag      = "logfile"
	LogDirectoryFlag = "log-directory"
	LogFormatFlag    = "log-format"

	LogFormatDefault = "default"
	LogFormatJSON    = "json"

	dirPermMode  = 0744 // rwxr--r--
	filePermMode = 0644 // rw-r--r--

	consoleTimeFormat = time.RFC3339
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = utcNow
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func fallbackLogger(err error) *zerolog.Logger {
	failLog := fallbacklog.With().Logger()
	fallbacklog.Error().Err(err).Msg("Cannot open the configured log outputs, logging to stderr only")
	return &failLog
}

// resilientMultiWriter copies each event to every writer. A failing writer
// never stops the others.
type resilientMultiWriter struct {
	level   zerolog.Level
	writers []io.Writer
}

func (t resilientMultiWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		_, _ = w.Write(p)
	}
	return len(p), nil
}

func (t resilientMultiWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < t.level {
		return len(p), nil
	}
	return t.Write(p)
}

var levelErrorLogged = false

func newZerolog(loggerConfig *Config) *zerolog.Logger {
	var writers []io.Writer
	if loggerConfig.ConsoleConfig != nil {
		writers = append(writers, createConsoleLogger(*loggerConfig.ConsoleConfig))
	}
	if loggerConfig.FileConfig != nil {
		fileLogger, err := createFileWriter(*loggerConfig.FileConfig)
		if err != nil {
			return fallbackLogger(err)
		}
		writers = append(writers, fileLogger)
	}
	if loggerConfig.RollingConfig != nil {
		rollingLogger, err := createRollingLogger(*loggerConfig.RollingConfig)
		if err != nil {
			return fallbackLogger(err)
		}
		writers = append(writers, rollingLogger)
	}

	level, levelErr := zerolog.ParseLevel(loggerConfig.MinLevel)
	if levelErr != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	multi := resilientMultiWriter{level, writers}
	log := zerolog.New(multi).With().Timestamp().Logger()
	if !levelErrorLogged && levelErr != nil {
		log.Error().Msgf("Failed to parse log level %q, using %q instead", loggerConfig.MinLevel, level)
		levelErrorLogged = true
	}

	return &log
}

// CreateLoggerFromContext builds the logger described by the logging flags of c.
func CreateLoggerFromContext(c *cli.Context, disableTerminal bool) *zerolog.Logger {
	logLevel := c.String(LogLevelFlag)
	logFile := c.String(LogFileFlag)
	logDirectory := c.String(LogDirectoryFlag)
	formatJSON := c.String(LogFormatFlag) == LogFormatJSON

	loggerConfig := CreateConfig(
		logLevel,
		disableTerminal,
		formatJSON,
		logDirectory,
		logFile,
	)

	log := newZerolog(loggerConfig)
	if incompatibleFlagsSet := logFile != "" && logDirectory != ""; incompatibleFlagsSet {
		log.Error().Msgf("Your config includes values for both %s (%s) and %s (%s), but they are incompatible. %s takes precedence.", LogFileFlag, logFile, LogDirectoryFlag, logDirectory, LogFileFlag)
	}
	return log
}

// Create builds a logger from loggerConfig. A nil config logs info and
// above to stderr.
func Create(loggerConfig *Config) *zerolog.Logger {
	if loggerConfig == nil {
		loggerConfig = &Config{
			ConsoleConfig: defaultConfig.ConsoleConfig,
			MinLevel:      defaultConfig.MinLevel,
		}
	}
	return newZerolog(loggerConfig)
}

func createConsoleLogger(config ConsoleConfig) io.Writer {
	consoleOut := config.out
	if consoleOut == nil {
		consoleOut = os.Stderr
	}
	if config.asJSON {
		return &consoleWriter{out: consoleOut}
	}
	return zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(consoleOut),
		NoColor:    config.noColor || !term.IsTerminal(int(consoleOut.Fd())),
		TimeFormat: consoleTimeFormat,
	}
}

type fileInitializer struct {
	once          sync.Once
	writer        io.Writer
	creationError error
}

var (
	singleFileInit   fileInitializer
	rotatingFileInit fileInitializer
)

// createFileWriter appends to the log file, creating it and its directory
// when missing. The file is opened once per process.
func createFileWriter(config FileConfig) (io.Writer, error) {
	singleFileInit.once.Do(func() {
		if config.Dirname != "" {
			if err := os.MkdirAll(config.Dirname, dirPermMode); err != nil {
				singleFileInit.creationError = errors.Wrap(err, "unable to create directories for the log file")
				return
			}
		}
		logFile, err := os.OpenFile(config.Fullpath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermMode)
		if err != nil {
			singleFileInit.creationError = errors.Wrap(err, "unable to open the log file")
			return
		}
		singleFileInit.writer = logFile
	})
	return singleFileInit.writer, singleFileInit.creationError
}

func createRollingLogger(config RollingConfig) (io.Writer, error) {
	rotatingFileInit.once.Do(func() {
		if err := os.MkdirAll(config.Dirname, dirPermMode); err != nil {
			rotatingFileInit.creationError = errors.Wrap(err, "unable to create the log directory")
			return
		}
		rotatingFileInit.writer = &lumberjack.Logger{
			Filename:   path.Join(config.Dirname, config.Filename),
			MaxBackups: config.maxBackups,
			MaxSize:    config.maxSize,
			MaxAge:     config.maxAge,
		}
	})

	return rotatingFileInit.writer, rotatingFileInit.creationError
}
