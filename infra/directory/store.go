// Package directory persists the driver directory: a YAML file edited by
// hand, a SQLite table, or memory.
package directory

import (
	"github.com/kilianp07/haulplan/core/factory"
	"github.com/kilianp07/haulplan/core/fleet"
)

var storeRegistry = factory.NewRegistry[fleet.DirectoryStore]()

// Register adds a directory store factory identified by name.
func Register(name string, f factory.Factory[fleet.DirectoryStore]) error {
	return storeRegistry.Register(name, f)
}

// Types lists the registered store names.
func Types() []string { return storeRegistry.Names() }

// New creates the store described by cfg. An empty type selects memory.
func New(cfg factory.ModuleConfig) (fleet.DirectoryStore, error) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
	return storeRegistry.Create(cfg)
}

// pathConf is the settings shared by file backed stores.
type pathConf struct {
	Path string `json:"path"`
}

func init() {
	_ = Register("memory", func(map[string]any) (fleet.DirectoryStore, error) {
		return NewMemoryStore(nil), nil
	})
	_ = Register("yaml", func(conf map[string]any) (fleet.DirectoryStore, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		st, err := NewYAMLStore(c.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	})
	_ = Register("sqlite", func(conf map[string]any) (fleet.DirectoryStore, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		st, err := NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	})
}
