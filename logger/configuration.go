package logger

import (
	"os"
	"path/filepath"
)

const (
	defaultMinLevel    = "info"
	defaultLogFilename = "rc5.log"

	rollingMaxSize    = 1 // megabytes
	rollingMaxBackups = 5 // files
	rollingMaxAge     = 0 // days, 0 keeps forever
)

var defaultConfig = Config{
	ConsoleConfig: &ConsoleConfig{},
	MinLevel:      defaultMinLevel,
}

// Config selects where log events go. A nil sub-config disables that output.
type Config struct {
	ConsoleConfig *ConsoleConfig
	FileConfig    *FileConfig
	RollingConfig *RollingConfig

	MinLevel string // debug | info | warn | error | fatal
}

type ConsoleConfig struct {
	noColor bool
	asJSON  bool
	out     *os.File // stderr when nil
}

type FileConfig struct {
	Dirname  string
	Filename string
}

func (fc *FileConfig) Fullpath() string {
	return filepath.Join(fc.Dirname, fc.Filename)
}

type RollingConfig struct {
	Dirname  string
	Filename string

	maxSize    int
	maxBackups int
	maxAge     int
}

// CreateConfig builds a Config from flag values. A single log file takes
// precedence over a rolling log directory.
func CreateConfig(
	minLevel string,
	disableTerminal bool,
	formatJSON bool,
	rollingLogPath, nonRollingLogFilePath string,
) *Config {
	var console *ConsoleConfig
	if !disableTerminal {
		console = &ConsoleConfig{asJSON: formatJSON}
	}

	var file *FileConfig
	var rolling *RollingConfig
	if nonRollingLogFilePath != "" {
		file = createFileConfig(nonRollingLogFilePath)
	} else if rollingLogPath != "" {
		rolling = createRollingConfig(rollingLogPath)
	}

	if minLevel == "" {
		minLevel = defaultConfig.MinLevel
	}

	return &Config{
		ConsoleConfig: console,
		FileConfig:    file,
		RollingConfig: rolling,

		MinLevel: minLevel,
	}
}

func createFileConfig(fullpath string) *FileConfig {
	dirname, filename := filepath.Split(fullpath)
	if filename == "" {
		filename = defaultLogFilename
	}
	return &FileConfig{
		Dirname:  dirname,
		Filename: filename,
	}
}

func createRollingConfig(directory string) *RollingConfig {
	return &RollingConfig{
		Dirname:    directory,
		Filename:   defaultLogFilename,
		maxSize:    rollingMaxSize,
		maxBackups: rollingMaxBackups,
		maxAge:     rollingMaxAge,
	}
}
