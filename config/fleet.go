package config

import (
	"github.com/kilianp07/haulplan/core/fleet"
)

// FleetConfig overrides the built-in truck lists. Empty lists keep the
// compiled-in defaults.
type FleetConfig struct {
	OffsetTrucks     []string `json:"offset_trucks"`
	ContractorTrucks []string `json:"contractor_trucks"`
	// SlingerBases are the truck numbers allowed to run slinger jobs.
	SlingerBases []string `json:"slinger_bases"`
}

// Classifier returns the classifier settings.
func (c FleetConfig) Classifier() fleet.ClassifierConfig {
	return fleet.ClassifierConfig{OffsetTrucks: c.OffsetTrucks, ContractorTrucks: c.ContractorTrucks}
}
