package factory

import "testing"

type store struct {
	Path    string
	MaxSize int
}

type storeConf struct {
	Path    string `json:"path"`
	MaxSize int    `json:"max_size_mb"`
}

func newStore(conf map[string]any) (*store, error) {
	var c storeConf
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &store{Path: c.Path, MaxSize: c.MaxSize}, nil
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*store]()
	if err := reg.Register("jsonl", newStore); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "runs.log", "max_size_mb": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Path != "runs.log" || inst.MaxSize != 3 {
		t.Fatalf("unexpected store %+v", inst)
	}
}

// Values coming from environment overrides arrive as strings.
func TestDecode_WeakTypes(t *testing.T) {
	var c storeConf
	if err := Decode(map[string]any{"max_size_mb": "10"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.MaxSize != 10 {
		t.Fatalf("expected 10 got %d", c.MaxSize)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("z", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"xlsx", "csv", "json"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	names := reg.Names()
	if len(names) != 3 || names[0] != "csv" || names[2] != "xlsx" {
		t.Fatalf("unexpected names %v", names)
	}
	if !reg.Has("json") || reg.Has("yaml") {
		t.Fatal("Has mismatch")
	}
}
