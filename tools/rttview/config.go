// Package rttview reads the firmware's debug stream from a serial port and
// summarises it: ranger distance statistics, LED toggles and failures.
package rttview

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the viewer configuration.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	View   ViewConfig   `yaml:"view"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ViewConfig controls what is shown.
type ViewConfig struct {
	Window      int           `yaml:"window"`       // distance samples kept for statistics
	Interval    time.Duration `yaml:"interval"`     // summary period
	Tags        []string      `yaml:"tags"`         // tags echoed verbatim; empty echoes all
	ShowUnknown bool          `yaml:"show_unknown"` // echo lines that are not [tag] lines
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
			Baud: 115200,
		},
		View: ViewConfig{
			Window:   50,
			Interval: 5 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; missing fields are filled from them.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud <= 0 {
		c.Serial.Baud = def.Serial.Baud
	}
	if c.View.Window <= 0 {
		c.View.Window = def.View.Window
	}
	if c.View.Interval <= 0 {
		c.View.Interval = def.View.Interval
	}
}
