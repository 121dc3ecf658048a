// Package palette assigns display colours to truck types.
package palette

import (
	"sort"
	"strings"
)

// Colors is the fixed palette indexed by ColorForType.
var Colors = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// Unknown is returned for a blank truck type.
const Unknown = "#CCCCCC"

// ColorForType returns the colour of truckType given the truck types known
// to the caller. The result only depends on the set known ∪ {truckType},
// never on the order of known.
func ColorForType(truckType string, known []string) string {
	t := strings.TrimSpace(truckType)
	if t == "" {
		return Unknown
	}
	set := map[string]bool{t: true}
	for _, k := range known {
		if k = strings.TrimSpace(k); k != "" {
			set[k] = true
		}
	}
	types := make([]string, 0, len(set))
	for k := range set {
		types = append(types, k)
	}
	sort.Strings(types)
	i := sort.SearchStrings(types, t)
	return Colors[i%len(Colors)]
}

// Map returns the colour of every type in types.
func Map(types []string) map[string]string {
	out := make(map[string]string, len(types))
	for _, t := range types {
		out[t] = ColorForType(t, types)
	}
	return out
}
