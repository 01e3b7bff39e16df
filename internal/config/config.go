package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/backend"
)

// DefaultPath is the config file looked up when none is named.
const DefaultPath = "tally.yaml"

// Config represents tally.yaml (or tally.toml).
type Config struct {
	DataFile   string    `yaml:"data_file" toml:"data_file"`
	Backend    string    `yaml:"backend" toml:"backend"`
	SQLitePath string    `yaml:"sqlite_path" toml:"sqlite_path"`
	Currency   string    `yaml:"currency" toml:"currency"`
	AuditLog   string    `yaml:"audit_log,omitempty" toml:"audit_log,omitempty"`
	Log        LogConfig `yaml:"log" toml:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // console or json
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		DataFile:   "expenses.csv",
		Backend:    string(backend.CSV),
		SQLitePath: "expenses.db",
		Currency:   "₹",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads a config file from disk, decoding TOML for .toml files and
// YAML otherwise. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

// Save writes a Config in the format implied by the path's extension.
func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Resolve loads the config used by a command. An empty path means
// DefaultPath, which may be absent; a named file must exist. Relative
// paths in the file are taken relative to the file's directory.
// Environment overrides are applied last.
func Resolve(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
		cfg.relativeTo(filepath.Dir(path))
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, err
	default:
		cfg = Default()
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from TALLY_* environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"TALLY_DATA_FILE", &c.DataFile},
		{"TALLY_BACKEND", &c.Backend},
		{"TALLY_SQLITE_PATH", &c.SQLitePath},
		{"TALLY_CURRENCY", &c.Currency},
		{"TALLY_AUDIT_LOG", &c.AuditLog},
		{"TALLY_LOG_LEVEL", &c.Log.Level},
		{"TALLY_LOG_FORMAT", &c.Log.Format},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.dst = v
		}
	}
}

// Validate checks the fields that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if !backend.Type(c.Backend).IsValid() {
		return fmt.Errorf("invalid backend %q (want csv or sqlite)", c.Backend)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.Log.Format)
	}
	return nil
}

// BackendConfig returns the storage settings for backend.Open.
func (c *Config) BackendConfig() backend.Config {
	return backend.Config{
		Type:       backend.Type(c.Backend),
		DataFile:   c.DataFile,
		SQLitePath: c.SQLitePath,
	}
}

// relativeTo rebases relative file paths onto dir.
func (c *Config) relativeTo(dir string) {
	for _, p := range []*string{&c.DataFile, &c.SQLitePath, &c.AuditLog} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
