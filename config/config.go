package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/infra/mqtt"
)

// EngineConfig groups the sizing engine assumptions and constants.
type EngineConfig struct {
	Assumptions sizing.Assumptions `json:"assumptions"`
	Params      sizing.Params      `json:"params"`
}

// APIConfig defines the HTTP API listener.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

type Config struct {
	Engine  EngineConfig       `json:"engine"`
	Metrics coremetrics.Config `json:"metrics"`
	MQTT    mqtt.Config        `json:"mqtt"`
	API     APIConfig          `json:"api"`
}

// Default returns a configuration with every default applied, used by the CLI
// when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.Engine.Assumptions.SetDefaults()
	c.Engine.Params.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
}

// Load reads the configuration from a YAML or JSON file with optional
// environment overrides (EVSIZE_ prefix, "__" as the nesting separator).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("EVSIZE_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evsize_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Engine.Assumptions.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Engine.Params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
