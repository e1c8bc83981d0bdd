package lca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnergySource(t *testing.T) {
	tests := []struct {
		in   string
		want EnergySource
	}{
		{"coal_grid", CoalGrid},
		{"Coal-based grid", CoalGrid},
		{"  COAL_BASED_GRID ", CoalGrid},
		{"mixed grid", MixedGrid},
		{"Renewable-heavy", RenewableHeavy},
		{"renewable_heavy", RenewableHeavy},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnergySource(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProductionRoute_Labels(t *testing.T) {
	got, err := ParseProductionRoute("Virgin/Raw")
	require.NoError(t, err)
	assert.Equal(t, Virgin, got)

	got, err = ParseProductionRoute("mixed")
	require.NoError(t, err)
	assert.Equal(t, Mixed, got)
}

func TestParseMetal_Unknown(t *testing.T) {
	_, err := ParseMetal("steel")
	require.ErrorIs(t, err, ErrInvalidInput)

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, FieldMetal, invalidErr.Field)
	assert.Equal(t, "steel", invalidErr.Value)
	assert.Empty(t, invalidErr.Suggestion)
}

func TestParse_Suggestion(t *testing.T) {
	_, err := ParseEnergySource("renewable")
	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "Renewable-heavy", invalidErr.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "Renewable-heavy"?`)
}

func TestParse_AccentInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want Metal
	}{
		{"Aluminíum", Aluminium},
		{"ALUMÍNIUM", Aluminium},
		{"cöpper", Copper},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMetal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := ParseEndOfLife("Réuse")
	require.NoError(t, err)
	assert.Equal(t, Reuse, got)
}

func TestParse_Empty(t *testing.T) {
	_, err := ParseStoragePractice("   ")
	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, FieldStorage, invalidErr.Field)
	assert.Equal(t, "value is required", invalidErr.Reason)
}

// TestEnums_RoundTrip checks that every name and label parses back to its value.
func TestEnums_RoundTrip(t *testing.T) {
	for _, e := range metals {
		assertRoundTrip(t, e, ParseMetal)
	}
	for _, e := range routes {
		assertRoundTrip(t, e, ParseProductionRoute)
	}
	for _, e := range oreQualities {
		assertRoundTrip(t, e, ParseOreQuality)
	}
	for _, e := range energySources {
		assertRoundTrip(t, e, ParseEnergySource)
	}
	for _, e := range endOfLifeOptions {
		assertRoundTrip(t, e, ParseEndOfLife)
	}
	for _, e := range storagePractices {
		assertRoundTrip(t, e, ParseStoragePractice)
	}
}

func assertRoundTrip[T comparable](t *testing.T, e enumEntry[T], parse func(string) (T, error)) {
	t.Helper()
	for _, s := range []string{e.name, e.label} {
		got, err := parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, e.value, got, s)
	}
}

func TestEnums_StringAndLabel(t *testing.T) {
	assert.Equal(t, "aluminium", Aluminium.String())
	assert.Equal(t, "Coal-based grid", CoalGrid.Label())
	assert.Equal(t, "temporary_open", TemporaryOpen.String())
	assert.Equal(t, "unknown", Metal(0).String())
	assert.Equal(t, "Unknown", EndOfLife(9).Label())
}

func TestEnums_TextUnmarshal(t *testing.T) {
	var m Metal
	require.NoError(t, m.UnmarshalText([]byte("Copper")))
	assert.Equal(t, Copper, m)

	var s StoragePractice
	assert.ErrorIs(t, s.UnmarshalText([]byte("open pit")), ErrInvalidInput)

	b, err := Reuse.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "reuse", string(b))
}

func TestByProductKind(t *testing.T) {
	assert.Equal(t, "t", RedMudTonnes.Unit())
	assert.Equal(t, "kg", SO2Kg.Unit())
	assert.Equal(t, "so2_kg", SO2Kg.String())
	assert.Equal(t, "Red mud (t)", RedMudTonnes.Label())
}
