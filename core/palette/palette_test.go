package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForType_OrderIndependent(t *testing.T) {
	a := ColorForType("Slinger", []string{"Dump Truck", "Slinger", "Tractor Trailer"})
	b := ColorForType("Slinger", []string{"Tractor Trailer", "Dump Truck"})
	assert.Equal(t, a, b)
	assert.Equal(t, Colors[1], a)
}

func TestColorForType_Distinct(t *testing.T) {
	known := []string{"Dump Truck", "Slinger", "Tractor Trailer", "Standard Mixer"}
	m := Map(known)
	seen := map[string]bool{}
	for _, c := range m {
		assert.False(t, seen[c], "colour %s reused", c)
		seen[c] = true
	}
	assert.Equal(t, Colors[0], m["Dump Truck"])
}

func TestColorForType_Blank(t *testing.T) {
	assert.Equal(t, Unknown, ColorForType("  ", nil))
	assert.Equal(t, Colors[0], ColorForType("Dump Truck", nil))
}
