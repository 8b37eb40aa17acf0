// Package strip decides whether a logging label survives to the output.
package strip

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type mode int

const (
	modeNever mode = iota
	modeAlways
	modeWhenEnv
	modePerEnv
)

// Config is the strip policy: never, always, when the current environment
// name matches, or a per-environment map.
type Config struct {
	mode   mode
	env    string
	perEnv map[string]bool
}

// Never keeps every label.
func Never() Config { return Config{mode: modeNever} }

// Always strips every label (environment overrides still apply).
func Always() Config { return Config{mode: modeAlways} }

// WhenEnv strips labels only when the build environment equals name.
func WhenEnv(name string) Config { return Config{mode: modeWhenEnv, env: name} }

// PerEnv strips labels in environments mapped to true.
func PerEnv(envs map[string]bool) Config { return Config{mode: modePerEnv, perEnv: envs} }

// Active reports whether the policy calls for stripping under the given
// environment name, before overrides are consulted.
func (c Config) Active(env string) bool {
	switch c.mode {
	case modeAlways:
		return true
	case modeWhenEnv:
		return c.env == env
	case modePerEnv:
		return c.perEnv[env]
	default:
		return false
	}
}

func (c Config) String() string {
	switch c.mode {
	case modeNever:
		return "never"
	case modeAlways:
		return "always"
	case modeWhenEnv:
		return fmt.Sprintf("env(%s)", c.env)
	case modePerEnv:
		envs := make([]string, 0, len(c.perEnv))
		for env, on := range c.perEnv {
			if on {
				envs = append(envs, env)
			}
		}
		sort.Strings(envs)
		return fmt.Sprintf("envs(%s)", strings.Join(envs, ","))
	default:
		return fmt.Sprintf("strip-config-invalid(%d)", c.mode)
	}
}

var _ yaml.Unmarshaler = (*Config)(nil)

// UnmarshalYAML accepts the three configuration shapes:
//
//	strip: true
//	strip: production
//	strip: {production: true, staging: false}
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Tag {
		case "!!bool":
			var b bool
			if err := value.Decode(&b); err != nil {
				return err
			}
			if b {
				*c = Always()
			} else {
				*c = Never()
			}
			return nil

		case "!!str":
			*c = WhenEnv(value.Value)
			return nil

		case "!!null":
			*c = Never()
			return nil

		default:
			return fmt.Errorf("unsupported strip scalar %s", value.Tag)
		}

	case yaml.MappingNode:
		var envs map[string]bool
		if err := value.Decode(&envs); err != nil {
			return err
		}
		*c = PerEnv(envs)
		return nil

	default:
		return fmt.Errorf("strip must be a bool, an environment name or a mapping, got %s", value.Tag)
	}
}
