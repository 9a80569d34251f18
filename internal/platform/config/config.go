package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CalendarsConfig maps destinations to external calendar identifiers. Any
// empty value means that destination is unavailable: the sync engine skips
// the slot instead of failing the run.
type CalendarsConfig struct {
	Member   string `yaml:"member" json:"member"`
	Public   string `yaml:"public" json:"public"`
	Building string `yaml:"building" json:"building"`
}

// CalDAVConfig points the calendar adapter at its server.
type CalDAVConfig struct {
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration. It is loaded once at
// startup and passed explicitly into the sync engine and the expander; there
// is no ambient lookup at use sites.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// Year is the target year all recurrence expansion and series cutoffs
	// are computed against.
	Year int `yaml:"year" json:"year"`

	// Timezone is the IANA name of the operator's timezone. All form
	// date/time values are taken to already be in this zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	Calendars CalendarsConfig `yaml:"calendars" json:"calendars"`
	CalDAV    CalDAVConfig    `yaml:"caldav" json:"caldav"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		Year:     time.Now().Year(),
		Timezone: "America/New_York",
	}
}

// Normalize fills zero values so partially-filled configs still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Year <= 0 {
		c.Year = time.Now().Year()
	}
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
}

// Location resolves the configured timezone, falling back to time.Local if
// the name does not resolve.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads configuration from a YAML file. A missing file is a first run:
// the default config is written there (0600) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".event-publisher-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
