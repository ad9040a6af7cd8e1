package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3133", c.ServerURL)
	assert.NotEmpty(t, c.DataDir)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 24*time.Hour, c.InactivityTimeout)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "@every 5m", c.RefreshSchedule)
	assert.Equal(t, time.Monday, c.WeekStart)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := load(nil, noEnv)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeTemp(t, "tripcal.json", `{
		"server_url": "https://api.example.com",
		"language": "zh",
		"inactivity_timeout": "2h",
		"request_timeout": 5000000000,
		"week_start": "Sunday"
	}`)

	cfg, err := load([]string{"-c", path}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.ServerURL)
	assert.Equal(t, "zh", cfg.Language)
	assert.Equal(t, 2*time.Hour, cfg.InactivityTimeout)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, "@every 5m", cfg.RefreshSchedule, "absent fields keep defaults")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeTemp(t, "tripcal.yaml", "data_dir: /var/lib/tripcal\nrefresh_schedule: \"*/10 * * * *\"\nlog_level: debug\n")

	cfg, err := load([]string{"--config=" + path}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tripcal", cfg.DataDir)
	assert.Equal(t, "*/10 * * * *", cfg.RefreshSchedule)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTemp(t, "tripcal.json", `{"server_url": "http://from-file", "language": "de"}`)
	env := envOf(map[string]string{
		EnvServer:   "http://from-env",
		EnvLanguage: "fr",
	})

	cfg, err := load([]string{"-c", path, "-a", "http://from-flag"}, env)
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag", cfg.ServerURL)
	assert.Equal(t, "fr", cfg.Language)
}

func TestLoad_FlagsIgnoreForeignArgs(t *testing.T) {
	cfg, err := load([]string{"-x", "1", "-d", "/tmp/tc", "-r", "@hourly", "-l", "es", "extra"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tc", cfg.DataDir)
	assert.Equal(t, "@hourly", cfg.RefreshSchedule)
	assert.Equal(t, "es", cfg.Language)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		file string
	}{
		{name: "bad json", file: "bad.json", body: `{"server_url":`},
		{name: "bad yaml", file: "bad.yml", body: "server_url: [1"},
		{name: "bad weekday", file: "w.json", body: `{"week_start": "someday"}`},
		{name: "bad duration", file: "d.json", body: `{"inactivity_timeout": "soon"}`},
		{name: "non-positive timeout", file: "z.json", body: `{"inactivity_timeout": "0s"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.body)
			_, err := load([]string{"-c", path}, noEnv)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")}, noEnv)
		assert.Error(t, err)
	})
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" saturday ")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)

	_, err = ParseWeekday("sat")
	assert.Error(t, err)
}
