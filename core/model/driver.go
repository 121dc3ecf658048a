package model

// DriverStatus is the availability of a truck in the directory.
type DriverStatus string

const (
	StatusActive      DriverStatus = "active"
	StatusUnavailable DriverStatus = "unavailable"
	StatusOff         DriverStatus = "off"
)

// Priority tiers, lower is preferred.
type Priority int

const (
	PriorityEveryday Priority = iota
	PriorityPrimary
	PrioritySubstitute
	PriorityContractor
)

// LowestRank is the rank given to drivers without a priority tier.
const LowestRank = 999

// Placeholder driver names that do not count as a real driver.
var placeholderNames = map[string]bool{
	"No Driver":    true,
	"Not Assigned": true,
}

// DriverEntry is one truck in the driver directory. An empty Driver means
// no driver is on file for the truck.
type DriverEntry struct {
	ID        string       `json:"id" yaml:"id"`
	Driver    string       `json:"driver" yaml:"driver"`
	Status    DriverStatus `json:"status" yaml:"status"`
	TruckType string       `json:"truckType,omitempty" yaml:"truck_type,omitempty"`
	Priority  *Priority    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Rank returns the priority tier as an int, LowestRank when unset.
func (d DriverEntry) Rank() int {
	if d.Priority == nil {
		return LowestRank
	}
	return int(*d.Priority)
}

// HasDriver reports whether a real driver name is on file.
func (d DriverEntry) HasDriver() bool {
	return d.Driver != "" && !placeholderNames[d.Driver]
}

// Assignable reports whether the truck can take work from the engine:
// active, with a real driver and a truck type.
func (d DriverEntry) Assignable() bool {
	return d.Status == StatusActive && d.HasDriver() && d.TruckType != ""
}

// PriorityOf is a helper for building DriverEntry literals.
func PriorityOf(p Priority) *Priority { return &p }
