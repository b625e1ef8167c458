package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// AppConfig represents the application configuration loaded from a TOML file.
type AppConfig struct {
	path string

	// DueSoonWindowDays is the number of days before the final deadline
	// during which a case is flagged as due soon. Zero keeps the default.
	DueSoonWindowDays int `toml:"due_soon_window_days"`

	// DefaultOwner is the owner identity assumed for requests that carry
	// none. Empty makes the owner header mandatory.
	DefaultOwner string `toml:"default_owner"`

	// Responsibles are party names seeded into the registry at startup.
	Responsibles []ResponsibleEntry `toml:"responsible"`
}

// ResponsibleEntry is a seeded registry entry.
type ResponsibleEntry struct {
	Name string `toml:"name"`
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to application configuration TOML file",
			Sources:     cli.EnvVars("DOCTRACK_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.DueSoonWindowDays < 0 {
		return goerr.Wrap(ErrInvalidConfig, "due_soon_window_days must not be negative",
			goerr.V("due_soon_window_days", a.DueSoonWindowDays))
	}

	for i, entry := range a.Responsibles {
		name := model.NormalizeName(entry.Name)
		if name == "" {
			return goerr.Wrap(ErrMissingName, "responsible entry has no name", goerr.V("index", i))
		}
		for _, other := range a.Responsibles[:i] {
			if model.SameName(other.Name, name) {
				return goerr.Wrap(ErrDuplicateName, "duplicate responsible entry", goerr.V("name", name))
			}
		}
	}

	return nil
}

// Load reads and validates the configuration file. Without a configured path
// it returns the zero configuration.
func (a *AppConfig) Load() error {
	if a.path == "" {
		return nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if err := a.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return nil
}
