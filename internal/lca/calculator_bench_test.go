package lca

import "testing"

// BenchmarkCompute measures a single estimate with the default factors.
func BenchmarkCompute(b *testing.B) {
	factors := DefaultFactorTable()
	in := Input{
		Metal:               Aluminium,
		Route:               Mixed,
		RecycledPercent:     30,
		OreQuality:          Medium,
		EnergySource:        CoalGrid,
		TransportDistanceKm: 200,
		TransportTonnes:     1,
		EndOfLife:           Recycling,
		Storage:             Authorized,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Compute(in, factors)
	}
}

// BenchmarkParseEnergySource measures label parsing, which runs per request.
func BenchmarkParseEnergySource(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseEnergySource("Coal-based grid")
	}
}
