package tracelabel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".tracelabel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
env: production
strip: true
labels: [trace, alert]
warning_labels: [alert]
aliases:
  debug:
    template: fmt.Println(PREFIX, PAYLOAD)
    import: fmt
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment())
	require.True(t, cfg.Strip.Active("production"))
	require.True(t, cfg.Strip.Active("development"))

	table, err := cfg.Table()
	require.NoError(t, err)

	// Derived labels plus the explicit alias; the default table does not
	// apply once anything is configured.
	require.Equal(t, []string{"alert", "debug", "trace"}, table.Names())
	require.False(t, table.Has("warn"))
}

func TestLoadConfigStripForms(t *testing.T) {
	cases := []struct {
		name       string
		strip      string
		production bool
		staging    bool
	}{
		{"bool true", "strip: true", true, true},
		{"bool false", "strip: false", false, false},
		{"environment name", "strip: production", true, false},
		{"per environment", "strip: {production: true, staging: false}", true, false},
		{"absent", "env: production", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tc.strip))
			require.NoError(t, err)

			require.Equal(t, tc.production, cfg.Strip.Active("production"))
			require.Equal(t, tc.staging, cfg.Strip.Active("staging"))
		})
	}
}

func TestConfigTableIdempotent(t *testing.T) {
	cfg := &Config{Labels: []string{"trace"}}

	first, err := cfg.Table()
	require.NoError(t, err)

	second, err := cfg.Table()
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestConfigTableError(t *testing.T) {
	cfg := &Config{Aliases: map[string]Alias{"broken": {}}}

	_, err := cfg.Table()
	require.Error(t, err)

	// The error sticks across calls.
	_, again := cfg.Table()
	require.Equal(t, err, again)
}

func TestEnvironment(t *testing.T) {
	t.Run("config wins", func(t *testing.T) {
		t.Setenv(EnvVar, "staging")
		cfg := &Config{Env: "production"}
		require.Equal(t, "production", cfg.Environment())
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(EnvVar, "staging")
		require.Equal(t, "staging", (&Config{}).Environment())
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		require.Equal(t, DefaultEnvironment, (&Config{}).Environment())
	})
}
