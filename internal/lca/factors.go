package lca

import (
	"fmt"
	"math"
	"sort"
)

// Factor names accepted by FactorTable.Factor and FactorTable.WithFactor.
const (
	FactorAluminiumVirgin     = "aluminium_virgin"
	FactorAluminiumRecycled   = "aluminium_recycled"
	FactorCopperVirgin        = "copper_virgin"
	FactorCopperRecycled      = "copper_recycled"
	FactorRedMudPerTAluminium = "red_mud_per_t_aluminium"
	FactorSO2PerTCopper       = "so2_per_t_copper"
	FactorTransportPerTKm     = "transport_per_tkm"
	FactorRecycleCostAlu      = "recycle_cost_per_t_aluminium"
	FactorRecycleCostCopper   = "recycle_cost_per_t_copper"
)

// QualityFactors maps ore quality to a by-product multiplier.
type QualityFactors struct {
	High   float64
	Medium float64
	Low    float64
}

// Get returns the multiplier for q.
func (f QualityFactors) Get(q OreQuality) float64 {
	switch q {
	case High:
		return f.High
	case Medium:
		return f.Medium
	case Low:
		return f.Low
	}
	return 0
}

// EnergyMultipliers maps the energy source to an intensity multiplier.
type EnergyMultipliers struct {
	CoalGrid       float64
	MixedGrid      float64
	RenewableHeavy float64
}

// Get returns the multiplier for s.
func (m EnergyMultipliers) Get(s EnergySource) float64 {
	switch s {
	case CoalGrid:
		return m.CoalGrid
	case MixedGrid:
		return m.MixedGrid
	case RenewableHeavy:
		return m.RenewableHeavy
	}
	return 0
}

// EndOfLifeBonus maps the end-of-life option to circularity points.
type EndOfLifeBonus struct {
	Landfill  float64
	Recycling float64
	Reuse     float64
}

// Get returns the bonus for e.
func (b EndOfLifeBonus) Get(e EndOfLife) float64 {
	switch e {
	case Landfill:
		return b.Landfill
	case Recycling:
		return b.Recycling
	case Reuse:
		return b.Reuse
	}
	return 0
}

// MetalFactors holds the per-metal coefficients.
type MetalFactors struct {
	// VirginKgCO2PerKg is the primary route intensity.
	VirginKgCO2PerKg float64

	// RecycledKgCO2PerKg is the secondary route intensity.
	RecycledKgCO2PerKg float64

	// ByProductPerTonne is red mud t/t for aluminium, SO2 kg/t for copper.
	ByProductPerTonne float64

	// RecycleCostUSDPerTonne is the unit recycling cost.
	RecycleCostUSDPerTonne float64

	// OreQuality scales ByProductPerTonne.
	OreQuality QualityFactors
}

// FactorTable is the immutable set of coefficients used by Compute.
// It holds only value types, so copies never share state.
type FactorTable struct {
	Aluminium MetalFactors
	Copper    MetalFactors

	// TransportKgCO2PerTonneKm is the transport emission rate.
	TransportKgCO2PerTonneKm float64

	Energy    EnergyMultipliers
	EndOfLife EndOfLifeBonus
}

// DefaultFactorTable returns the illustrative demonstration coefficients.
// Replace with validated local data for real use.
func DefaultFactorTable() FactorTable {
	return FactorTable{
		Aluminium: MetalFactors{
			VirginKgCO2PerKg:       16.0,
			RecycledKgCO2PerKg:     4.0,
			ByProductPerTonne:      1.5,
			RecycleCostUSDPerTonne: 200.0,
			OreQuality:             QualityFactors{High: 1.0, Medium: 1.2, Low: 1.5},
		},
		Copper: MetalFactors{
			VirginKgCO2PerKg:       8.0,
			RecycledKgCO2PerKg:     2.0,
			ByProductPerTonne:      25.0,
			RecycleCostUSDPerTonne: 300.0,
			OreQuality:             QualityFactors{High: 1.0, Medium: 1.3, Low: 1.6},
		},
		TransportKgCO2PerTonneKm: 0.05,
		Energy:                   EnergyMultipliers{CoalGrid: 1.2, MixedGrid: 1.0, RenewableHeavy: 0.8},
		EndOfLife:                EndOfLifeBonus{Landfill: 0, Recycling: 30, Reuse: 40},
	}
}

// ForMetal returns the coefficients for m.
func (t FactorTable) ForMetal(m Metal) MetalFactors {
	if m == Copper {
		return t.Copper
	}
	return t.Aluminium
}

// namedFactor returns a pointer to the field behind name, or nil.
func (t *FactorTable) namedFactor(name string) *float64 {
	switch name {
	case FactorAluminiumVirgin:
		return &t.Aluminium.VirginKgCO2PerKg
	case FactorAluminiumRecycled:
		return &t.Aluminium.RecycledKgCO2PerKg
	case FactorCopperVirgin:
		return &t.Copper.VirginKgCO2PerKg
	case FactorCopperRecycled:
		return &t.Copper.RecycledKgCO2PerKg
	case FactorRedMudPerTAluminium:
		return &t.Aluminium.ByProductPerTonne
	case FactorSO2PerTCopper:
		return &t.Copper.ByProductPerTonne
	case FactorTransportPerTKm:
		return &t.TransportKgCO2PerTonneKm
	case FactorRecycleCostAlu:
		return &t.Aluminium.RecycleCostUSDPerTonne
	case FactorRecycleCostCopper:
		return &t.Copper.RecycleCostUSDPerTonne
	}
	return nil
}

// FactorNames returns every name accepted by Factor, sorted.
func FactorNames() []string {
	names := []string{
		FactorAluminiumVirgin,
		FactorAluminiumRecycled,
		FactorCopperVirgin,
		FactorCopperRecycled,
		FactorRedMudPerTAluminium,
		FactorSO2PerTCopper,
		FactorTransportPerTKm,
		FactorRecycleCostAlu,
		FactorRecycleCostCopper,
	}
	sort.Strings(names)
	return names
}

// Factor looks up a coefficient by name.
// Returns (0, false) if the name is unknown.
func (t FactorTable) Factor(name string) (float64, bool) {
	p := t.namedFactor(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Factors returns every named coefficient as a new map.
func (t FactorTable) Factors() map[string]float64 {
	out := make(map[string]float64, 9)
	for _, name := range FactorNames() {
		out[name], _ = t.Factor(name)
	}
	return out
}

// WithFactor returns a copy of t with the named coefficient replaced.
func (t FactorTable) WithFactor(name string, value float64) (FactorTable, error) {
	p := t.namedFactor(name)
	if p == nil {
		return t, fmt.Errorf("%w: unknown factor %q", ErrInvalidFactors, name)
	}
	*p = value
	return t, nil
}

// Validate checks that every coefficient is finite and non-negative.
func (t FactorTable) Validate() error {
	for _, name := range FactorNames() {
		v, _ := t.Factor(name)
		if err := checkFactor(name, v); err != nil {
			return err
		}
	}

	multipliers := []struct {
		name  string
		value float64
	}{
		{"ore_quality.aluminium.high", t.Aluminium.OreQuality.High},
		{"ore_quality.aluminium.medium", t.Aluminium.OreQuality.Medium},
		{"ore_quality.aluminium.low", t.Aluminium.OreQuality.Low},
		{"ore_quality.copper.high", t.Copper.OreQuality.High},
		{"ore_quality.copper.medium", t.Copper.OreQuality.Medium},
		{"ore_quality.copper.low", t.Copper.OreQuality.Low},
		{"energy.coal_grid", t.Energy.CoalGrid},
		{"energy.mixed_grid", t.Energy.MixedGrid},
		{"energy.renewable_heavy", t.Energy.RenewableHeavy},
		{"end_of_life.landfill", t.EndOfLife.Landfill},
		{"end_of_life.recycling", t.EndOfLife.Recycling},
		{"end_of_life.reuse", t.EndOfLife.Reuse},
	}
	for _, m := range multipliers {
		if err := checkFactor(m.name, m.value); err != nil {
			return err
		}
	}
	return nil
}

func checkFactor(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not finite", ErrInvalidFactors, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s is negative (%g)", ErrInvalidFactors, name, v)
	}
	return nil
}
