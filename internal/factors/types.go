// Package factors loads lca factor tables from the embedded defaults or from
// YAML/JSON files.
package factors

import (
	"fmt"

	"github.com/rshade/sustainamine/internal/lca"
)

// document is the on-disk shape of a factor file.
// Every section is optional; missing keys keep the base table's values.
type document struct {
	// Factors holds the named coefficients (see lca.FactorNames).
	Factors map[string]float64 `yaml:"factors,omitempty" json:"factors,omitempty"`

	// OreQuality is metal -> ore quality -> by-product multiplier.
	OreQuality map[string]map[string]float64 `yaml:"ore_quality,omitempty" json:"ore_quality,omitempty"`

	// Energy is energy source -> intensity multiplier.
	Energy map[string]float64 `yaml:"energy,omitempty" json:"energy,omitempty"`

	// EndOfLife is end-of-life option -> circularity bonus.
	EndOfLife map[string]float64 `yaml:"end_of_life,omitempty" json:"end_of_life,omitempty"`
}

// apply overlays doc onto base and returns the result.
// Section keys accept the same names and labels as lca's Parse functions;
// two keys resolving to the same option in one section are rejected.
func (doc document) apply(base lca.FactorTable) (lca.FactorTable, error) {
	table := base
	var err error

	for name, v := range doc.Factors {
		if table, err = table.WithFactor(name, v); err != nil {
			return base, err
		}
	}

	metals := make(map[lca.Metal]bool, len(doc.OreQuality))
	for metalName, qualities := range doc.OreQuality {
		metal, err := lca.ParseMetal(metalName)
		if err != nil {
			return base, fmt.Errorf("%w: ore_quality: %v", lca.ErrInvalidFactors, err)
		}
		if !claim(metals, metal) {
			return base, duplicate("ore_quality", metal, metalName)
		}
		mf := table.ForMetal(metal)
		seen := make(map[lca.OreQuality]bool, len(qualities))
		for qualityName, v := range qualities {
			q, err := lca.ParseOreQuality(qualityName)
			if err != nil {
				return base, fmt.Errorf("%w: ore_quality.%s: %v", lca.ErrInvalidFactors, metal, err)
			}
			if !claim(seen, q) {
				return base, duplicate("ore_quality."+metal.String(), q, qualityName)
			}
			switch q {
			case lca.High:
				mf.OreQuality.High = v
			case lca.Medium:
				mf.OreQuality.Medium = v
			case lca.Low:
				mf.OreQuality.Low = v
			}
		}
		switch metal {
		case lca.Aluminium:
			table.Aluminium = mf
		case lca.Copper:
			table.Copper = mf
		}
	}

	sources := make(map[lca.EnergySource]bool, len(doc.Energy))
	for sourceName, v := range doc.Energy {
		s, err := lca.ParseEnergySource(sourceName)
		if err != nil {
			return base, fmt.Errorf("%w: energy: %v", lca.ErrInvalidFactors, err)
		}
		if !claim(sources, s) {
			return base, duplicate("energy", s, sourceName)
		}
		switch s {
		case lca.CoalGrid:
			table.Energy.CoalGrid = v
		case lca.MixedGrid:
			table.Energy.MixedGrid = v
		case lca.RenewableHeavy:
			table.Energy.RenewableHeavy = v
		}
	}

	options := make(map[lca.EndOfLife]bool, len(doc.EndOfLife))
	for optionName, v := range doc.EndOfLife {
		e, err := lca.ParseEndOfLife(optionName)
		if err != nil {
			return base, fmt.Errorf("%w: end_of_life: %v", lca.ErrInvalidFactors, err)
		}
		if !claim(options, e) {
			return base, duplicate("end_of_life", e, optionName)
		}
		switch e {
		case lca.Landfill:
			table.EndOfLife.Landfill = v
		case lca.Recycling:
			table.EndOfLife.Recycling = v
		case lca.Reuse:
			table.EndOfLife.Reuse = v
		}
	}

	return table, nil
}

// claim marks v as set and reports whether it was unset before.
func claim[T comparable](seen map[T]bool, v T) bool {
	if seen[v] {
		return false
	}
	seen[v] = true
	return true
}

// duplicate reports two keys in one section that resolve to the same option.
func duplicate(section string, option fmt.Stringer, key string) error {
	return fmt.Errorf("%w: %s: duplicate entry for %s (key %q)", lca.ErrInvalidFactors, section, option, key)
}

// documentOf converts a table into its complete on-disk shape.
func documentOf(t lca.FactorTable) document {
	quality := func(q lca.QualityFactors) map[string]float64 {
		return map[string]float64{
			lca.High.String():   q.High,
			lca.Medium.String(): q.Medium,
			lca.Low.String():    q.Low,
		}
	}
	return document{
		Factors: t.Factors(),
		OreQuality: map[string]map[string]float64{
			lca.Aluminium.String(): quality(t.Aluminium.OreQuality),
			lca.Copper.String():    quality(t.Copper.OreQuality),
		},
		Energy: map[string]float64{
			lca.CoalGrid.String():       t.Energy.CoalGrid,
			lca.MixedGrid.String():      t.Energy.MixedGrid,
			lca.RenewableHeavy.String(): t.Energy.RenewableHeavy,
		},
		EndOfLife: map[string]float64{
			lca.Landfill.String():  t.EndOfLife.Landfill,
			lca.Recycling.String(): t.EndOfLife.Recycling,
			lca.Reuse.String():     t.EndOfLife.Reuse,
		},
	}
}
