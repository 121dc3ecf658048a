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

	"github.com/kilianp07/haulplan/core/factory"
	"github.com/kilianp07/haulplan/core/ingest"
	"github.com/kilianp07/haulplan/core/metrics"
	"github.com/kilianp07/haulplan/core/pit"
	"github.com/kilianp07/haulplan/infra/mqtt"
)

type Config struct {
	Directory factory.ModuleConfig `json:"directory"`
	Fleet     FleetConfig          `json:"fleet"`
	Pits      pit.Config           `json:"pits"`
	Ingest    ingest.Config        `json:"ingest"`
	History   HistoryConfig        `json:"history"`
	Metrics   metrics.Config       `json:"metrics"`
	Notify    mqtt.Config          `json:"notify"`
	HTTP      HTTPConfig           `json:"http"`
	Sentry    SentryConfig         `json:"sentry"`
}

// Default returns a configuration with every section defaulted, used when
// no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	c.Ingest.SetDefaults()
	c.History.SetDefaults()
	c.HTTP.SetDefaults()
	c.Sentry.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.History.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if c.Ingest.DefaultShowUpOffset != nil && *c.Ingest.DefaultShowUpOffset < 0 {
		return fmt.Errorf("ingest: default_show_up_offset must not be negative")
	}
	if c.Ingest.MaxTrucksPerRow < 0 {
		return fmt.Errorf("ingest: max_trucks_per_row must not be negative")
	}
	return nil
}

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
	// Optional environment overrides: K_INGEST__DEFAULT_TRUCK_TYPE
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
