package lca

const (
	// KgPerTonne converts the per-kg intensity to a per-tonne basis before
	// the per-tonne transport term is added.
	KgPerTonne = 1000.0

	// RecycledContentWeight is the circularity points per recycled percent.
	RecycledContentWeight = 0.5

	// MaxCircularityScore caps the circularity score.
	MaxCircularityScore = 100.0

	// LowCircularityThreshold is the score below which FlagLowCircularity applies.
	LowCircularityThreshold = 40.0

	// MinTransportTonnes is the smallest accepted transport quantity.
	MinTransportTonnes = 1.0

	// MaxRecycledPercent is the largest accepted recycled content.
	MaxRecycledPercent = 100
)
