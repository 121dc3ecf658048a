package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/haulplan/core/factory"
	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/model"
)

func sampleDrivers() []model.DriverEntry {
	return []model.DriverEntry{
		{ID: "94", Driver: "Sam Ortiz", Status: model.StatusActive, TruckType: "Dump Truck", Priority: model.PriorityOf(model.PriorityEveryday)},
		{ID: "94s", Driver: "Sam Ortiz", Status: model.StatusOff, TruckType: "Slinger"},
		{ID: "RJ1", Driver: "Rae Jones", Status: model.StatusActive, TruckType: "Tractor Trailer", Priority: model.PriorityOf(model.PriorityContractor)},
	}
}

func roundTrip(t *testing.T, st fleet.DirectoryStore) {
	t.Helper()
	ctx := context.Background()
	in := sampleDrivers()
	require.NoError(t, st.Save(ctx, in))
	out, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, st.Save(ctx, in[:1]))
	out, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1, "save replaces the directory")
}

func TestMemoryStore(t *testing.T) {
	roundTrip(t, NewMemoryStore(nil))
}

func TestMemoryStore_Isolation(t *testing.T) {
	in := sampleDrivers()
	st := NewMemoryStore(in)
	*in[0].Priority = model.PrioritySubstitute
	out, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.PriorityEveryday, *out[0].Priority)
}

func TestYAMLStore(t *testing.T) {
	st, err := NewYAMLStore(filepath.Join(t.TempDir(), "conf", "drivers.yaml"))
	require.NoError(t, err)
	roundTrip(t, st)
}

func TestYAMLStore_MissingFileAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drivers.yaml")
	st, err := NewYAMLStore(path)
	require.NoError(t, err)
	out, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	data := `drivers:
  - id: "12"
    driver: Lee
    truck_type: Dump Truck
  - id: "14"
    driver: No Driver
    status: off
    truck_type: Dump Truck
    priority: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	out, err = st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.StatusActive, out[0].Status)
	assert.Nil(t, out[0].Priority)
	assert.Equal(t, model.StatusOff, out[1].Status)
	assert.Equal(t, model.PrioritySubstitute, *out[1].Priority)
}

func TestYAMLStore_Invalid(t *testing.T) {
	_, err := NewYAMLStore("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "drivers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drivers: [unclosed"), 0o644))
	st, err := NewYAMLStore(path)
	require.NoError(t, err)
	_, err = st.Load(context.Background())
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	st, err := NewSQLiteStore("file:directory_test.db?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	roundTrip(t, st)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"memory", "yaml", "sqlite"} {
		assert.Contains(t, Types(), name)
	}
	st, err := New(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	st, err = New(factory.ModuleConfig{Type: "yaml", Conf: map[string]any{"path": filepath.Join(t.TempDir(), "d.yaml")}})
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, st)

	_, err = New(factory.ModuleConfig{Type: "postgres"})
	assert.Error(t, err)
}
