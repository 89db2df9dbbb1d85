package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL      = "https://api.covid19api.com"
	DefaultChartOutput = "chart.html"
	DefaultChartWidth  = 800
	DefaultChartHeight = 400
	DefaultTopicPrefix = "covidplot"
)

// Config holds the application configuration
type Config struct {
	APIURL      string        `yaml:"api_url,omitempty"`
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"` // 0 = no timeout
	Series      []SeriesEntry `yaml:"series,omitempty" validate:"dive"`
	Chart       ChartConfig   `yaml:"chart,omitempty"`
	MQTT        MQTTConfig    `yaml:"mqtt,omitempty"`
}

// SeriesEntry is one country/province to plot
type SeriesEntry struct {
	Country    string `yaml:"country" validate:"required"` // API slug, e.g. "united-kingdom"
	Population int64  `yaml:"population" validate:"gt=0"`  // used for per 100k normalization
	Province   string `yaml:"province,omitempty"`          // "" = national total
}

// ChartConfig holds chart output settings
type ChartConfig struct {
	Output string `yaml:"output,omitempty"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// MQTTConfig holds MQTT broker settings for the publish command
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

var validate = validator.New()

// Load reads the config file, applies environment overrides and validates series entries
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg as YAML with a short header. The file is private because it
// may hold MQTT credentials.
func Save(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(saveHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const saveHeader = `# covidplot configuration
# series entries: country slug (see "covidplot countries"), population, optional province
`

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// LoadDotEnv loads a .env file into the process environment if one exists
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COVIDPLOT_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("COVIDPLOT_MQTT_BROKER"); v != "" {
		c.MQTT.Broker = v
	}
	if v := os.Getenv("COVIDPLOT_MQTT_USERNAME"); v != "" {
		c.MQTT.Username = v
	}
	if v := os.Getenv("COVIDPLOT_MQTT_PASSWORD"); v != "" {
		c.MQTT.Password = v
	}
}

// GetAPIURL returns the API base URL with a default
func (c *Config) GetAPIURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// GetChartOutput returns the chart HTML path with a default
func (c *Config) GetChartOutput() string {
	if c.Chart.Output == "" {
		return DefaultChartOutput
	}
	return c.Chart.Output
}

// GetChartWidth returns the chart width in pixels with a default of 800
func (c *Config) GetChartWidth() int {
	if c.Chart.Width <= 0 {
		return DefaultChartWidth
	}
	return c.Chart.Width
}

// GetChartHeight returns the chart height in pixels with a default of 400
func (c *Config) GetChartHeight() int {
	if c.Chart.Height <= 0 {
		return DefaultChartHeight
	}
	return c.Chart.Height
}

// GetTopicPrefix returns the MQTT topic prefix with a default
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return DefaultTopicPrefix
	}
	return c.MQTT.TopicPrefix
}
