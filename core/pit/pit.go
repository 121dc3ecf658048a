// Package pit maps material descriptions to the pit or plant that supplies
// them.
package pit

import (
	"strings"

	"github.com/kilianp07/haulplan/core/model"
)

const (
	// DefaultSource is used for any material that matches nothing else.
	DefaultSource = "SMI Pit"
	// AsphaltSource supplies hot mix, binder, top, base and millings.
	AsphaltSource = "Asphalt Plant"
)

// DefaultAsphaltKeywords are matched case-insensitively as substrings. The
// trailing spaces in "top " and "base " are significant.
var DefaultAsphaltKeywords = []string{"asphalt", "hot mix", "binder", "top ", "base ", "millings", "rap"}

// DefaultMaterials is the exact-match table of known materials.
var DefaultMaterials = map[string]string{
	"Hot Mix":          AsphaltSource,
	"Binder":           AsphaltSource,
	"Top Course":       AsphaltSource,
	"Base Course":      AsphaltSource,
	"Millings":         AsphaltSource,
	"RAP":              AsphaltSource,
	"Cold Patch":       AsphaltSource,
	"Item 4":           DefaultSource,
	"3/4\" Stone":      DefaultSource,
	"#57 Stone":        DefaultSource,
	"Stone Dust":       DefaultSource,
	"Crusher Run":      DefaultSource,
	"Rip Rap":          DefaultSource,
	"Screened Sand":    "Sand Pit",
	"Concrete Sand":    "Sand Pit",
	"Fill":             "Sand Pit",
	"Screened Topsoil": "Topsoil Yard",
	"Topsoil":          "Topsoil Yard",
	"Mulch":            "Topsoil Yard",
}

// Config overrides the built-in tables. Zero fields keep the defaults.
type Config struct {
	Default         string            `json:"default"`
	Asphalt         string            `json:"asphalt"`
	AsphaltKeywords []string          `json:"asphalt_keywords"`
	Materials       map[string]string `json:"materials"`
}

// Resolver resolves a material description to a pit code.
type Resolver struct {
	def       string
	asphalt   string
	keywords  []string
	materials map[string]string
}

// NewResolver builds a Resolver from cfg layered over the defaults.
// Materials given in cfg extend the default table.
func NewResolver(cfg Config) *Resolver {
	r := &Resolver{
		def:       DefaultSource,
		asphalt:   AsphaltSource,
		keywords:  DefaultAsphaltKeywords,
		materials: make(map[string]string, len(DefaultMaterials)+len(cfg.Materials)),
	}
	if cfg.Default != "" {
		r.def = cfg.Default
	}
	if cfg.Asphalt != "" {
		r.asphalt = cfg.Asphalt
	}
	if len(cfg.AsphaltKeywords) > 0 {
		r.keywords = cfg.AsphaltKeywords
	}
	for k, v := range DefaultMaterials {
		r.materials[k] = v
	}
	for k, v := range cfg.Materials {
		r.materials[k] = v
	}
	return r
}

// Default returns a Resolver using only the built-in tables.
func Default() *Resolver { return NewResolver(Config{}) }

// ForMaterial returns the pit code for material: exact table match first,
// then an asphalt keyword substring match, then the default source.
func (r *Resolver) ForMaterial(material string) string {
	if material == "" {
		return r.def
	}
	if code, ok := r.materials[material]; ok {
		return code
	}
	lower := strings.ToLower(material)
	for _, kw := range r.keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return r.asphalt
		}
	}
	return r.def
}

// FillMissing returns a copy of entries where every empty Pit is resolved
// from the entry's materials. Explicit pits are never overwritten.
func (r *Resolver) FillMissing(entries []model.ScheduleEntry) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Pit) == "" {
			e.Pit = r.ForMaterial(e.Materials)
		}
		out[i] = e
	}
	return out
}
