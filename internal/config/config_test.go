package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.GetAPIURL())
	assert.Equal(t, DefaultChartOutput, cfg.GetChartOutput())
	assert.Equal(t, 800, cfg.GetChartWidth())
	assert.Equal(t, 400, cfg.GetChartHeight())
	assert.Equal(t, DefaultTopicPrefix, cfg.GetTopicPrefix())
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Empty(t, cfg.Series)
}

func TestLoadParsesSeries(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
api_url: http://localhost:9999
http_timeout: 45s
series:
  - country: canada
    population: 37590000
    province: Ontario
  - country: united-states
    population: 328200000
chart:
  output: out/compare.html
  width: 1024
mqtt:
  enabled: true
  broker: localhost:1883
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.GetAPIURL())
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, SeriesEntry{Country: "canada", Population: 37590000, Province: "Ontario"}, cfg.Series[0])
	assert.Equal(t, "", cfg.Series[1].Province)
	assert.Equal(t, "out/compare.html", cfg.GetChartOutput())
	assert.Equal(t, 1024, cfg.GetChartWidth())
	assert.Equal(t, 400, cfg.GetChartHeight())
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "localhost:1883", cfg.MQTT.Broker)
}

func TestLoadRejectsInvalidSeries(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"zero population": "series:\n  - country: canada\n    population: 0\n",
		"missing country": "series:\n  - population: 100\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name+".yaml", body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COVIDPLOT_API_URL", "http://env.example")
	t.Setenv("COVIDPLOT_MQTT_PASSWORD", "secret")

	path := writeFile(t, t.TempDir(), "config.yaml", "api_url: http://file.example\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.GetAPIURL())
	assert.Equal(t, "secret", cfg.MQTT.Password)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Config{
		HTTPTimeout: time.Minute,
		Series:      []SeriesEntry{{Country: "germany", Population: 83000000}},
	}
	require.NoError(t, Save(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# covidplot configuration"))
	assert.Contains(t, string(data), "- country: germany")

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.Series, out.Series)
	assert.Equal(t, time.Minute, out.HTTPTimeout)
}

func TestLoadDotEnvMissingIsNotAnError(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
