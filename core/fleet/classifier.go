package fleet

import (
	"strings"

	"github.com/kilianp07/haulplan/core/model"
	"github.com/kilianp07/haulplan/core/timeutil"
)

// DefaultOffsetTrucks are the company fleet trucks whose drivers show up
// before load time.
var DefaultOffsetTrucks = []string{
	"11", "12", "14", "15", "17", "18", "21", "22", "23", "24", "25",
	"31", "32", "33", "41", "42", "44", "51", "52", "61", "62", "71",
	"92", "94", "95", "96", "92s", "94s", "95s", "96s",
	"SMI11", "SMI12", "SMI14", "SMI15", "SMI17", "SMI18", "SMI21", "SMI22",
}

// DefaultContractorTrucks are hired trucks that show up at load time.
var DefaultContractorTrucks = []string{
	"RJ1", "RJ2", "RJ3", "DLT5", "DLT6", "KAM7", "KAM8", "BRN1", "BRN2", "MTC4",
}

// ClassifierConfig externalises the truck lists. Empty lists keep the
// defaults.
type ClassifierConfig struct {
	OffsetTrucks     []string `json:"offset_trucks"`
	ContractorTrucks []string `json:"contractor_trucks"`
}

// Classifier decides which trucks get the show-up offset. Matching is case
// insensitive, ignores a leading '*' marker and treats a "PUP" suffix as the
// same truck.
type Classifier struct {
	offset     map[string]bool
	contractor map[string]bool
}

// NewClassifier builds a Classifier from cfg.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	offset := cfg.OffsetTrucks
	if len(offset) == 0 {
		offset = DefaultOffsetTrucks
	}
	contractor := cfg.ContractorTrucks
	if len(contractor) == 0 {
		contractor = DefaultContractorTrucks
	}
	c := &Classifier{offset: make(map[string]bool), contractor: make(map[string]bool)}
	for _, id := range offset {
		c.offset[normalizeTruckID(id)] = true
	}
	for _, id := range contractor {
		key := normalizeTruckID(id)
		if !c.offset[key] {
			c.contractor[key] = true
		}
	}
	return c
}

// DefaultClassifier uses the built-in lists.
func DefaultClassifier() *Classifier { return NewClassifier(ClassifierConfig{}) }

func normalizeTruckID(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	s = strings.TrimSpace(strings.TrimPrefix(s, "*"))
	if strings.HasSuffix(s, "pup") {
		s = strings.TrimRight(strings.TrimSuffix(s, "pup"), " -")
	}
	return s
}

func flaggedContractor(id string) bool {
	s := strings.TrimSpace(id)
	return strings.HasPrefix(s, "*") || strings.HasPrefix(strings.ToUpper(s), "CONTRACTOR")
}

// HasShowUpOffset reports whether id is a fleet truck that shows up before
// load time.
func (c *Classifier) HasShowUpOffset(id string) bool {
	if flaggedContractor(id) {
		return false
	}
	return c.offset[normalizeTruckID(id)]
}

// IsContractor reports whether id is treated as a contractor truck: listed
// as one, flagged with '*' or CONTRACTOR, or simply not in the fleet list.
func (c *Classifier) IsContractor(id string) bool {
	return !c.HasShowUpOffset(id)
}

// IsKnownContractor reports whether id is on the contractor list.
func (c *Classifier) IsKnownContractor(id string) bool {
	return c.contractor[normalizeTruckID(id)]
}

// ShowUpOffset returns the offset in minutes to apply for the given truck:
// offset for fleet trucks and for unassigned entries, zero otherwise.
func (c *Classifier) ShowUpOffset(truck string, offset int) int {
	d := strings.TrimSpace(truck)
	if d == "" || d == model.Unassigned || c.HasShowUpOffset(d) {
		return offset
	}
	return 0
}

// ShowUpTime derives the show-up time for a load time and truck: offset
// minutes earlier for fleet trucks and unassigned entries, equal to the
// load time for contractors. An unknown load time gives "".
func (c *Classifier) ShowUpTime(loadTime, truck string, offset int) string {
	if loadTime == "" {
		return ""
	}
	return timeutil.AddMinutes(loadTime, -c.ShowUpOffset(truck, offset))
}
