package directory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/haulplan/core/model"
)

// yamlFile is the on-disk layout:
//
//	drivers:
//	  - id: "94"
//	    driver: Sam Ortiz
//	    status: active
//	    truck_type: Dump Truck
//	    priority: 0
type yamlFile struct {
	Drivers []model.DriverEntry `yaml:"drivers"`
}

// YAMLStore keeps the directory in a YAML file.
type YAMLStore struct {
	mu   sync.Mutex
	path string
}

// NewYAMLStore returns a store for path. The file does not need to exist.
func NewYAMLStore(path string) (*YAMLStore, error) {
	if path == "" {
		return nil, errors.New("yaml directory: path is required")
	}
	return &YAMLStore{path: path}, nil
}

// Load reads the file. A missing file is an empty directory.
func (s *YAMLStore) Load(ctx context.Context) ([]model.DriverEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f yamlFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	for i, d := range f.Drivers {
		if d.Status == "" {
			f.Drivers[i].Status = model.StatusActive
		}
	}
	return f.Drivers, nil
}

// Save writes entries through a temporary file renamed over the target.
func (s *YAMLStore) Save(ctx context.Context, entries []model.DriverEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := yaml.Marshal(yamlFile{Drivers: entries})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".drivers-*.yaml")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
