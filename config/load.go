package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	core_config "github.com/grovetools/core/config"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ExtensionName is the grove.yml key holding the recfix section.
const ExtensionName = "recfix"

// Defaults.
const (
	DefaultBackend    = "dynamodb"
	DefaultRegion     = "ap-east-1"
	DefaultTable      = "Mediainvites"
	DefaultVerifyHint = "node test-media-events-api.js"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: DefaultBackend,
			Region:  DefaultRegion,
			Table:   DefaultTable,
		},
		Fix: FixConfig{
			VerifyHint: DefaultVerifyHint,
		},
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the recfix extension of grove.yml, the YAML file at path (if non-empty),
// a .env file in the working directory and RECFIX_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if coreCfg, err := core_config.LoadDefault(); err == nil {
		var ext Config
		if err := coreCfg.UnmarshalExtension(ExtensionName, &ext); err == nil {
			cfg.merge(ext)
		}
	}

	if path != "" {
		ext, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.merge(ext)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadFile reads a standalone recfix YAML file.
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"RECFIX_BACKEND":  &c.Store.Backend,
		"RECFIX_REGION":   &c.Store.Region,
		"RECFIX_TABLE":    &c.Store.Table,
		"RECFIX_ENDPOINT": &c.Store.Endpoint,
		"RECFIX_PATH":     &c.Store.Path,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

// merge copies the non-zero fields of o over c.
func (c *Config) merge(o Config) {
	setString(&c.Store.Backend, o.Store.Backend)
	setString(&c.Store.Region, o.Store.Region)
	setString(&c.Store.Table, o.Store.Table)
	setString(&c.Store.Endpoint, o.Store.Endpoint)
	setString(&c.Store.Path, o.Store.Path)

	if o.Fix.UniqueIDs != nil {
		c.Fix.UniqueIDs = o.Fix.UniqueIDs
	}
	if o.Fix.RemoveStale != nil {
		c.Fix.RemoveStale = o.Fix.RemoveStale
	}
	setString(&c.Fix.BackupPath, o.Fix.BackupPath)
	setString(&c.Fix.VerifyHint, o.Fix.VerifyHint)
	if o.Fix.MaxDiffLines != 0 {
		c.Fix.MaxDiffLines = o.Fix.MaxDiffLines
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
