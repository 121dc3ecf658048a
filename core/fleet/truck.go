// Package fleet holds the truck and driver reference rules: truck type
// synonyms, truck number parsing, fleet/contractor classification and the
// driver directory.
package fleet

import (
	"regexp"
	"strings"
)

var truckTypeSynonyms = map[string]string{
	"Trailer": "Tractor Trailer",
	"Mixer":   "Standard Mixer",
	"Triaxle": "Dump Truck",
}

// NormalizeTruckType collapses known truck type synonyms onto one canonical
// name. Unknown values, including "", are returned unchanged.
func NormalizeTruckType(t string) string {
	if canon, ok := truckTypeSynonyms[t]; ok {
		return canon
	}
	return t
}

// SameTruckType reports whether a and b name the same truck type.
func SameTruckType(a, b string) bool {
	return NormalizeTruckType(a) == NormalizeTruckType(b)
}

// TruckNumber is a parsed truck identifier. Base is empty when the id could
// not be parsed.
type TruckNumber struct {
	Base    string
	Slinger bool
}

// Valid reports whether a base number was found.
func (n TruckNumber) Valid() bool { return n.Base != "" }

var truckNumber = regexp.MustCompile(`^(\d+)([PpSs])?$`)

// ParseTruckNumber strips a leading "SMI" prefix and a trailing P or S
// suffix. A trailing s/S marks the slinger variant of the truck.
func ParseTruckNumber(id string) TruckNumber {
	s := strings.TrimSpace(id)
	if len(s) >= 3 && strings.EqualFold(s[:3], "SMI") {
		s = strings.TrimSpace(s[3:])
	}
	m := truckNumber.FindStringSubmatch(s)
	if m == nil {
		return TruckNumber{}
	}
	return TruckNumber{Base: m[1], Slinger: strings.EqualFold(m[2], "s")}
}
