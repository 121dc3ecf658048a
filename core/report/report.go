// Package report summarises a schedule per truck type.
package report

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/haulplan/core/model"
)

// TypeSummary is the rollup for one truck type.
type TypeSummary struct {
	TruckType  string `json:"truckType"`
	Entries    int    `json:"entries"`
	Assigned   int    `json:"assigned"`
	Unassigned int    `json:"unassigned"`
	// Quantity totals the leading number of every parsable Qty field.
	Quantity decimal.Decimal `json:"quantity"`
	// Unit is set when every counted quantity uses the same unit.
	Unit string `json:"unit,omitempty"`
}

// Summary is the rollup for a whole schedule.
type Summary struct {
	Entries    int           `json:"entries"`
	Assigned   int           `json:"assigned"`
	Unassigned int           `json:"unassigned"`
	Types      []TypeSummary `json:"types"`
}

var quantity = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?|\.\d+)\s*(.*?)\s*$`)

// ParseQuantity splits "20 tons" into 20 and "tons". ok is false when qty
// does not start with a number.
func ParseQuantity(qty string) (decimal.Decimal, string, bool) {
	m := quantity.FindStringSubmatch(strings.ReplaceAll(qty, ",", ""))
	if m == nil {
		return decimal.Zero, "", false
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, "", false
	}
	return d, strings.ToLower(m[2]), true
}

// Summarize walks data in truck type encounter order.
func Summarize(data *model.ScheduleData) Summary {
	var s Summary
	if data == nil {
		return s
	}
	for _, tt := range data.TruckTypes() {
		ts := TypeSummary{TruckType: tt, Quantity: decimal.Zero}
		unit, mixed := "", false
		for _, e := range data.ByTruckType(tt) {
			ts.Entries++
			if e.IsUnassigned() {
				ts.Unassigned++
			} else {
				ts.Assigned++
			}
			q, u, ok := ParseQuantity(e.Qty)
			if !ok {
				continue
			}
			ts.Quantity = ts.Quantity.Add(q)
			switch {
			case mixed:
			case unit == "":
				unit = u
			case unit != u:
				mixed = true
			}
		}
		if !mixed {
			ts.Unit = unit
		}
		s.Entries += ts.Entries
		s.Assigned += ts.Assigned
		s.Unassigned += ts.Unassigned
		s.Types = append(s.Types, ts)
	}
	return s
}
