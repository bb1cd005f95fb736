package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cloudflare/rc5/rc5"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named set of cipher parameters. Flags given on the command
// line override the profile's values.
type Profile struct {
	Name       string `yaml:"name"`
	rc5.Config `yaml:",inline"`
}

// Configuration is the typed part of the config file. Everything else is
// read as flat flag values.
type Configuration struct {
	Profiles   []Profile `yaml:"profiles"`
	sourceFile string
}

// FindProfile returns the profile called name.
func (c *Configuration) FindProfile(name string) (Profile, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, errors.Wrapf(ErrProfileNotFound, "%q in %s", name, c.sourceFile)
}

// validateProfiles reports profiles that can never be selected or used.
func (c *Configuration) validateProfiles() []string {
	var warnings []string
	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if p.Name == "" {
			warnings = append(warnings, fmt.Sprintf("profile #%d has no name", i))
			continue
		}
		if seen[p.Name] {
			warnings = append(warnings, fmt.Sprintf("profile %q is defined more than once, the first definition wins", p.Name))
		}
		seen[p.Name] = true
		cfg := p.Config
		if cfg.KeySize == 0 {
			// the key size defaults to the length of the key given at run time
			cfg.KeySize = 1
		}
		if _, err := rc5.New(cfg, nil); err != nil {
			warnings = append(warnings, fmt.Sprintf("profile %q: %v", p.Name, err))
		}
	}
	return warnings
}
