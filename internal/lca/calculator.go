package lca

import (
	"math"
)

// Calculator computes estimates against a fixed FactorTable.
type Calculator interface {
	// Estimate validates in and returns its Result.
	Estimate(in Input) (Result, error)
}

// Estimator implements Calculator with an immutable FactorTable.
type Estimator struct {
	factors FactorTable
}

// NewEstimator returns an Estimator bound to factors.
// The table is validated once here instead of on every call.
func NewEstimator(factors FactorTable) (*Estimator, error) {
	if err := factors.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{factors: factors}, nil
}

// Factors returns a copy of the bound table.
func (e *Estimator) Factors() FactorTable {
	return e.factors
}

// Estimate implements Calculator.
func (e *Estimator) Estimate(in Input) (Result, error) {
	return Compute(in, e.factors)
}

// Compute returns the estimate for in using factors.
//
// The calculation:
//  1. Baseline kg CO2e/kg = virgin, recycled, or the recycled-percent weighted
//     average of both for the Mixed route
//  2. By-product = per-tonne yield × tonnes × ore quality multiplier
//  3. CO2/kg = baseline × energy multiplier
//  4. CO2/t incl. transport = CO2/kg × 1000 + transport rate × km
//  5. Circularity = recycled% × 0.5 + end-of-life bonus, capped at 100
//  6. Recycling cost = unit cost × tonnes
//  7. Compliance flags in fixed order
//
// Returns an error wrapping ErrInvalidInput if any field is out of domain.
func Compute(in Input, factors FactorTable) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	metal := factors.ForMetal(in.Metal)

	// Step 1: Baseline intensity
	baseline := BaselineIntensity(in.Route, in.RecycledPercent, metal)

	// Step 2: By-product from throughput and ore quality
	byProduct := ByProduct{
		Kind:  byProductKind(in.Metal),
		Value: metal.ByProductPerTonne * in.TransportTonnes * metal.OreQuality.Get(in.OreQuality),
	}

	// Step 3: Energy adjustment
	co2PerKg := baseline * factors.Energy.Get(in.EnergySource)

	// Step 4: Transport. The per-kg figure must move to a per-tonne basis
	// before the per-tonne transport term is added.
	transportPerTonne := factors.TransportKgCO2PerTonneKm * in.TransportDistanceKm
	co2PerTonne := co2PerKg*KgPerTonne + transportPerTonne

	// Step 5: Circularity
	score := CircularityScore(in.RecycledPercent, factors.EndOfLife.Get(in.EndOfLife))

	// Step 6: Recycling cost
	cost := metal.RecycleCostUSDPerTonne * in.TransportTonnes

	return Result{
		CO2PerKg:                 co2PerKg,
		TransportCO2PerTonne:     transportPerTonne,
		CO2PerTonneInclTransport: co2PerTonne,
		CircularityScore:         score,
		RecyclingCostUSD:         cost,
		ByProduct:                byProduct,
		// Step 7: Flags
		Flags: ComplianceFlags(in.Metal, in.Storage, byProduct, score),
	}, nil
}

// BaselineIntensity returns kg CO2e per kg before the energy adjustment.
// recycledPercent only weights the Mixed route.
func BaselineIntensity(route ProductionRoute, recycledPercent int, metal MetalFactors) float64 {
	switch route {
	case Virgin:
		return metal.VirginKgCO2PerKg
	case Recycled:
		return metal.RecycledKgCO2PerKg
	case Mixed:
		p := float64(recycledPercent)
		return metal.VirginKgCO2PerKg*(100-p)/100 + metal.RecycledKgCO2PerKg*p/100
	}
	return 0
}

// CircularityScore rewards recycled content and end-of-life handling.
// Inputs are non-negative so only the upper bound needs clamping.
func CircularityScore(recycledPercent int, endOfLifeBonus float64) float64 {
	score := float64(recycledPercent)*RecycledContentWeight + endOfLifeBonus
	return Clamp(score, 0, MaxCircularityScore)
}

// ComplianceFlags evaluates each rule independently and returns all that apply.
// Aluminium with any red mud always carries FlagRedMudGuideline, so a virgin
// aluminium estimate reports it ahead of FlagLowCircularity.
func ComplianceFlags(metal Metal, storage StoragePractice, byProduct ByProduct, score float64) []Flag {
	flags := make([]Flag, 0, 4)
	if storage != Authorized {
		flags = append(flags, FlagStorageNonCompliant)
	}
	if metal == Aluminium && byProduct.Kind == RedMudTonnes && byProduct.Value > 0 {
		flags = append(flags, FlagRedMudGuideline)
	}
	if metal == Copper && byProduct.Kind == SO2Kg && byProduct.Value > 0 {
		flags = append(flags, FlagSO2Capture)
	}
	if score < LowCircularityThreshold {
		flags = append(flags, FlagLowCircularity)
	}
	return flags
}

func byProductKind(m Metal) ByProductKind {
	if m == Copper {
		return SO2Kg
	}
	return RedMudTonnes
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Validate checks every field of in against its domain, in declaration order,
// and returns the first violation.
func Validate(in Input) error {
	switch {
	case !valid(in.Metal, metals):
		return invalid(FieldMetal, int(in.Metal), "unknown metal")
	case !valid(in.Route, routes):
		return invalid(FieldRoute, int(in.Route), "unknown production route")
	case !validRecycledPercent(in.RecycledPercent):
		return invalid(FieldRecycledPercent, in.RecycledPercent, "must be between 0 and 100")
	case !valid(in.OreQuality, oreQualities):
		return invalid(FieldOreQuality, int(in.OreQuality), "unknown ore quality")
	case !valid(in.EnergySource, energySources):
		return invalid(FieldEnergySource, int(in.EnergySource), "unknown energy source")
	case !validDistance(in.TransportDistanceKm):
		return invalid(FieldTransportDistanceKm, in.TransportDistanceKm, "must be a finite number >= 0")
	case !validTonnes(in.TransportTonnes):
		return invalid(FieldTransportTonnes, in.TransportTonnes, "must be a finite number >= 1")
	case !valid(in.EndOfLife, endOfLifeOptions):
		return invalid(FieldEndOfLife, int(in.EndOfLife), "unknown end-of-life option")
	case !valid(in.Storage, storagePractices):
		return invalid(FieldStorage, int(in.Storage), "unknown storage practice")
	}
	return nil
}

func validRecycledPercent(p int) bool {
	return p >= 0 && p <= MaxRecycledPercent
}

func validDistance(km float64) bool {
	return !math.IsNaN(km) && !math.IsInf(km, 0) && km >= 0
}

func validTonnes(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 0) && t >= MinTransportTonnes
}
