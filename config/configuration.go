package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	// DefaultConfigFiles are the file names looked up in each search directory.
	DefaultConfigFiles = []string{"config.yml", "config.yaml"}

	// DefaultUnixConfigLocation is searched last on Unix systems.
	DefaultUnixConfigLocation = "/usr/local/etc/rc5"

	defaultUserConfigDirs = []string{"~/.rc5"}
	defaultNixConfigDirs  = []string{"/etc/rc5", DefaultUnixConfigLocation}

	ErrNoConfigFile = fmt.Errorf("Cannot determine default configuration path. No file %v in %v", DefaultConfigFiles, DefaultConfigSearchDirectories())
)

// ConfigFlag is the name of the flag holding the path of the config file.
const ConfigFlag = "config"

// DefaultConfigSearchDirectories lists the directories searched for a config
// file, most specific first.
func DefaultConfigSearchDirectories() []string {
	dirs := append([]string(nil), defaultUserConfigDirs...)
	if runtime.GOOS == "windows" {
		return dirs
	}
	return append(dirs, defaultNixConfigDirs...)
}

// FileExists reports whether path names an existing file. A missing file is
// not an error.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return !info.IsDir(), nil
}

// FindDefaultConfigPath returns the first existing config file in the search
// directories, or "" when there is none.
func FindDefaultConfigPath() string {
	for _, configDir := range DefaultConfigSearchDirectories() {
		dirPath, err := homedir.Expand(configDir)
		if err != nil {
			continue
		}
		for _, configFile := range DefaultConfigFiles {
			path := filepath.Join(dirPath, configFile)
			if ok, _ := FileExists(path); ok {
				return path
			}
		}
	}
	return ""
}

// configFileSettings serves flag values from the config file to altsrc.
// Profiles are decoded into Configuration and every other top-level key
// lands in Settings.
type configFileSettings struct {
	Configuration `yaml:",inline"`
	Settings      map[string]interface{} `yaml:",inline"`
}

func (c *Configuration) Source() string {
	return c.sourceFile
}

// setting returns the value of name as a T, or the zero T when the file
// does not set it.
func setting[T any](settings map[string]interface{}, name, kind string) (T, error) {
	var zero T
	raw, ok := settings[name]
	if !ok {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("expected %s found %T for %s", kind, raw, name)
	}
	return v, nil
}

func (c *configFileSettings) Int(name string) (int, error) {
	return setting[int](c.Settings, name, "int")
}

func (c *configFileSettings) String(name string) (string, error) {
	return setting[string](c.Settings, name, "string")
}

func (c *configFileSettings) Bool(name string) (bool, error) {
	return setting[bool](c.Settings, name, "boolean")
}

func (c *configFileSettings) Duration(name string) (time.Duration, error) {
	if raw, ok := c.Settings[name]; ok {
		switch v := raw.(type) {
		case time.Duration:
			return v, nil
		case string:
			return time.ParseDuration(v)
		}
		return 0, fmt.Errorf("expected duration found %T for %s", raw, name)
	}
	return 0, nil
}

func (c *configFileSettings) Float64(name string) (float64, error) {
	if raw, ok := c.Settings[name]; ok {
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return 0, fmt.Errorf("expected float found %T for %s", raw, name)
	}
	return 0, nil
}

func (c *configFileSettings) StringSlice(name string) ([]string, error) {
	return sliceSetting[string](c.Settings, name, "string")
}

func (c *configFileSettings) IntSlice(name string) ([]int, error) {
	return sliceSetting[int](c.Settings, name, "int")
}

// sliceSetting accepts a YAML sequence whose items are all T.
func sliceSetting[T any](settings map[string]interface{}, name, kind string) ([]T, error) {
	raw, ok := settings[name]
	if !ok {
		return nil, nil
	}
	switch v := raw.(type) {
	case []T:
		return v, nil
	case []interface{}:
		out := make([]T, len(v))
		for i, item := range v {
			typed, ok := item.(T)
			if !ok {
				return nil, fmt.Errorf("expected %s, found %T for %v", kind, item, item)
			}
			out[i] = typed
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected %s slice found %T for %s", kind, raw, name)
}

func (c *configFileSettings) Generic(name string) (cli.Generic, error) {
	return nil, errors.New("option type Generic not supported")
}

var configuration configFileSettings

func GetConfiguration() *Configuration {
	return &configuration.Configuration
}

// ReadConfigFile loads the file named by the config flag. The result is kept
// until the flag names a different file. warnings lists unknown keys and
// profiles that can never be used.
func ReadConfigFile(c *cli.Context, log *zerolog.Logger) (settings *configFileSettings, warnings string, err error) {
	configFile := c.String(ConfigFlag)
	if configuration.Source() == configFile || configFile == "" {
		if configuration.Source() == "" {
			return nil, "", ErrNoConfigFile
		}
		return &configuration, "", nil
	}

	log.Debug().Msgf("Loading configuration from %s", configFile)
	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrNoConfigFile
		}
		return nil, "", err
	}

	var loaded configFileSettings
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&loaded); err != nil {
		if err == io.EOF {
			log.Error().Msgf("Configuration file %s was empty", configFile)
			configuration = configFileSettings{}
			configuration.sourceFile = configFile
			return &configuration, "", nil
		}
		return nil, "", errors.Wrap(err, "error parsing YAML in config file at "+configFile)
	}
	loaded.sourceFile = configFile
	configuration = loaded

	// unknown keys only produce warnings
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	var unusedConfig configFileSettings
	if err := decoder.Decode(&unusedConfig); err != nil {
		warnings = err.Error()
	}
	for _, warning := range configuration.validateProfiles() {
		if warnings != "" {
			warnings += "; "
		}
		warnings += warning
	}

	return &configuration, warnings, nil
}
