// Package config handles configuration loading and validation for the
// tracewire demo tooling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the hop simulation.
type Config struct {
	// ServiceName names the local service on exported spans.
	ServiceName string `yaml:"service_name"`
	// System is the messaging.system tag value.
	System string `yaml:"system"`
	// Destination is the simulated topic/queue name.
	Destination string `yaml:"destination"`
	// Sampled controls the sampled flag on new root spans.
	Sampled bool `yaml:"sampled"`
	// ZipkinURL, when set, enables span export to a zipkin compatible
	// collector endpoint.
	ZipkinURL string `yaml:"zipkin_url"`
	// MessageCount is the number of messages the simulation publishes.
	MessageCount int `yaml:"message_count"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ServiceName:  "tracewire-demo",
		System:       "inmemory",
		Destination:  "orders",
		Sampled:      true,
		MessageCount: 5,
	}
}

// Load reads a YAML config file, applies defaults for unset fields and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("config: service_name must not be empty")
	}
	if c.Destination == "" {
		return fmt.Errorf("config: destination must not be empty")
	}
	if c.MessageCount < 1 {
		return fmt.Errorf("config: message_count must be at least 1, got %d", c.MessageCount)
	}
	return nil
}
