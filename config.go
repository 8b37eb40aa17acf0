package tracelabel

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/tracelabel/internal/labels"
	"github.com/sirkon/tracelabel/internal/strip"
)

// EnvVar names the variable supplying the current environment name when
// the configuration does not set one.
const EnvVar = "GO_ENV"

// DefaultEnvironment is assumed when neither configuration nor
// environment supply a name.
const DefaultEnvironment = "development"

// Alias configures one logging label: a call template plus the import its
// expansion relies on.
type Alias = labels.Alias

// StripConfig is the label deletion policy.
type StripConfig = strip.Config

// Strip policy constructors for programmatic configuration.
func StripNever() StripConfig                    { return strip.Never() }
func StripAlways() StripConfig                   { return strip.Always() }
func StripWhenEnv(name string) StripConfig       { return strip.WhenEnv(name) }
func StripPerEnv(envs map[string]bool) StripConfig { return strip.PerEnv(envs) }

// Config is the engine configuration. The zero value is usable: default
// aliases (log, trace, warn), no stripping, development environment.
//
// One Config may serve many files of a build: the alias table is
// normalized once and reused.
type Config struct {
	// Env overrides the environment name taken from GO_ENV.
	Env string `yaml:"env"`

	// Aliases maps label names to renderers. When empty (and Labels is
	// empty too), the default table applies.
	Aliases map[string]Alias `yaml:"aliases"`

	// Strip is the deletion policy, combined with the TRACE_* override
	// sets per label instance.
	Strip StripConfig `yaml:"strip"`

	// Labels derives plain aliases from a name list. Names also present
	// in WarningLabels route to the warn level, the rest to log.
	Labels        []string `yaml:"labels"`
	WarningLabels []string `yaml:"warning_labels"`

	tableOnce sync.Once
	table     *labels.Table
	tableErr  error
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}

	return &cfg, nil
}

// Table returns the normalized alias table. Normalization happens once
// per Config, repeated calls are no-ops returning the same table.
func (c *Config) Table() (*labels.Table, error) {
	c.tableOnce.Do(func() {
		merged := labels.Derive(c.Labels, c.WarningLabels)
		for name, alias := range c.Aliases {
			// Explicit aliases win over derived ones.
			merged[name] = alias
		}

		c.table, c.tableErr = labels.Normalize(merged)
	})

	return c.table, c.tableErr
}

// Environment resolves the current environment name.
func (c *Config) Environment() string {
	if c.Env != "" {
		return c.Env
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	return DefaultEnvironment
}
