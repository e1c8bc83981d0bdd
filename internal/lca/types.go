// Package lca provides illustrative life cycle estimates for primary metal
// production: CO2e intensity, metal-specific by-products, circularity and
// recycling cost.
package lca

// Metal is the metal being produced.
type Metal int

const (
	// Aluminium produces red mud as its by-product.
	Aluminium Metal = iota + 1
	// Copper produces SO2 as its by-product.
	Copper
)

// ProductionRoute selects which emission intensity applies.
type ProductionRoute int

const (
	// Virgin uses primary (ore-based) intensity only.
	Virgin ProductionRoute = iota + 1
	// Recycled uses secondary (scrap-based) intensity only.
	Recycled
	// Mixed weights virgin and recycled intensity by RecycledPercent.
	Mixed
)

// OreQuality scales by-product yield.
type OreQuality int

const (
	High OreQuality = iota + 1
	Medium
	Low
)

// EnergySource scales the baseline intensity.
type EnergySource int

const (
	CoalGrid EnergySource = iota + 1
	MixedGrid
	RenewableHeavy
)

// EndOfLife is the planned end-of-life handling of the metal.
type EndOfLife int

const (
	Landfill EndOfLife = iota + 1
	Recycling
	Reuse
)

// StoragePractice describes how process waste is stored on site.
type StoragePractice int

const (
	Authorized StoragePractice = iota + 1
	TemporaryOpen
	Untreated
)

// Input contains the caller-supplied parameters for one estimate.
type Input struct {
	// Metal is the metal being produced.
	Metal Metal `json:"metal"`

	// Route is the production route.
	Route ProductionRoute `json:"route"`

	// RecycledPercent is the recycled content (0 to 100).
	// Only the Mixed route uses it for the baseline intensity.
	RecycledPercent int `json:"recycled_percent"`

	// OreQuality scales the by-product quantity.
	OreQuality OreQuality `json:"ore_quality"`

	// EnergySource scales the per-kg intensity.
	EnergySource EnergySource `json:"energy_source"`

	// TransportDistanceKm is the haul distance (>= 0).
	TransportDistanceKm float64 `json:"transport_distance_km"`

	// TransportTonnes is the quantity transported and produced (>= 1).
	TransportTonnes float64 `json:"transport_tonnes"`

	// EndOfLife adds a bonus to the circularity score.
	EndOfLife EndOfLife `json:"end_of_life"`

	// Storage drives the hazardous waste compliance flag.
	Storage StoragePractice `json:"storage"`
}

// ByProductKind identifies which by-product a Result carries.
type ByProductKind int

const (
	// RedMudTonnes is bauxite residue from alumina refining, in tonnes.
	RedMudTonnes ByProductKind = iota + 1
	// SO2Kg is sulphur dioxide from copper smelting, in kilograms.
	SO2Kg
)

// ByProduct is the metal-specific waste quantity.
type ByProduct struct {
	Kind  ByProductKind `json:"kind"`
	Value float64       `json:"value"`
}

// Result contains the computed figures for one estimate.
type Result struct {
	// CO2PerKg is kg CO2e per kg of metal after the energy adjustment.
	CO2PerKg float64 `json:"co2_per_kg"`

	// TransportCO2PerTonne is kg CO2e added per tonne by transport.
	TransportCO2PerTonne float64 `json:"transport_co2_per_tonne"`

	// CO2PerTonneInclTransport is kg CO2e per tonne including transport.
	CO2PerTonneInclTransport float64 `json:"co2_per_tonne_incl_transport"`

	// CircularityScore is in [0, 100].
	CircularityScore float64 `json:"circularity_score"`

	// RecyclingCostUSD is the recycling cost for TransportTonnes.
	RecyclingCostUSD float64 `json:"recycling_cost_usd"`

	// ByProduct is red mud for aluminium, SO2 for copper.
	ByProduct ByProduct `json:"by_product"`

	// Flags lists applicable compliance flags in a fixed order.
	Flags []Flag `json:"flags"`
}

// Flag is a compliance notice attached to a Result.
type Flag string

const (
	FlagStorageNonCompliant Flag = "storage non-compliant with hazardous waste rules"
	FlagRedMudGuideline     Flag = "red mud handling guideline applies"
	FlagSO2Capture          Flag = "SO2 capture recommended"
	FlagLowCircularity      Flag = "low circularity — increase recycled input"
)
