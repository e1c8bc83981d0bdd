package lca

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Input field names used in InvalidInputError.Field.
const (
	FieldMetal               = "metal"
	FieldRoute               = "route"
	FieldRecycledPercent     = "recycled_percent"
	FieldOreQuality          = "ore_quality"
	FieldEnergySource        = "energy_source"
	FieldTransportDistanceKm = "transport_distance_km"
	FieldTransportTonnes     = "transport_tonnes"
	FieldEndOfLife           = "end_of_life"
	FieldStorage             = "storage"
)

// enumEntry pairs a value with its machine name and display label.
type enumEntry[T comparable] struct {
	value T
	name  string
	label string
}

var metals = []enumEntry[Metal]{
	{Aluminium, "aluminium", "Aluminium"},
	{Copper, "copper", "Copper"},
}

var routes = []enumEntry[ProductionRoute]{
	{Virgin, "virgin", "Virgin/Raw"},
	{Recycled, "recycled", "Recycled"},
	{Mixed, "mixed", "Mixed"},
}

var oreQualities = []enumEntry[OreQuality]{
	{High, "high", "High"},
	{Medium, "medium", "Medium"},
	{Low, "low", "Low"},
}

var energySources = []enumEntry[EnergySource]{
	{CoalGrid, "coal_grid", "Coal-based grid"},
	{MixedGrid, "mixed_grid", "Mixed grid"},
	{RenewableHeavy, "renewable_heavy", "Renewable-heavy"},
}

var endOfLifeOptions = []enumEntry[EndOfLife]{
	{Landfill, "landfill", "Landfill"},
	{Recycling, "recycling", "Recycling"},
	{Reuse, "reuse", "Reuse"},
}

var storagePractices = []enumEntry[StoragePractice]{
	{Authorized, "authorized", "Authorized storage"},
	{TemporaryOpen, "temporary_open", "Temporary open storage"},
	{Untreated, "untreated", "Untreated"},
}

// canonical folds separators and strips diacritics so "Coal-based grid",
// "coal_based_grid", "COAL BASED GRID" and "Aluminíum" compare equal after
// fuzzy normalization.
func canonical(s string) string {
	s = stripMarks(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '/':
			return '_'
		}
		return r
	}, s)
}

// stripMarks removes combining marks after canonical decomposition.
// The transformer is stateful, so each call builds its own chain.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func parseEnum[T comparable](field, s string, entries []enumEntry[T]) (T, error) {
	var zero T
	c := canonical(s)
	if c == "" {
		return zero, invalid(field, s, "value is required")
	}

	for _, e := range entries {
		if fuzzy.RankMatchNormalizedFold(c, canonical(e.name)) == 0 ||
			fuzzy.RankMatchNormalizedFold(c, canonical(e.label)) == 0 {
			return e.value, nil
		}
	}

	err := invalid(field, s, "unknown value")
	err.Suggestion = suggest(c, entries)
	return zero, err
}

// suggest returns the label of the closest entry, or "" when nothing is close.
func suggest[T comparable](c string, entries []enumEntry[T]) string {
	targets := make([]string, 0, len(entries))
	byTarget := make(map[string]string, len(entries))
	for _, e := range entries {
		t := canonical(e.label)
		targets = append(targets, t)
		byTarget[t] = e.label
	}
	ranks := fuzzy.RankFindNormalizedFold(c, targets)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return byTarget[ranks[0].Target]
}

func lookup[T comparable](v T, entries []enumEntry[T]) (enumEntry[T], bool) {
	for _, e := range entries {
		if e.value == v {
			return e, true
		}
	}
	return enumEntry[T]{}, false
}

func nameOf[T comparable](v T, entries []enumEntry[T]) string {
	if e, ok := lookup(v, entries); ok {
		return e.name
	}
	return "unknown"
}

func labelOf[T comparable](v T, entries []enumEntry[T]) string {
	if e, ok := lookup(v, entries); ok {
		return e.label
	}
	return "Unknown"
}

func valid[T comparable](v T, entries []enumEntry[T]) bool {
	_, ok := lookup(v, entries)
	return ok
}

// ParseMetal accepts "aluminium", "Aluminium", "ALUMINIUM", etc.
func ParseMetal(s string) (Metal, error) { return parseEnum(FieldMetal, s, metals) }

// ParseProductionRoute accepts machine names and UI labels ("Virgin/Raw").
func ParseProductionRoute(s string) (ProductionRoute, error) {
	return parseEnum(FieldRoute, s, routes)
}

func ParseOreQuality(s string) (OreQuality, error) {
	return parseEnum(FieldOreQuality, s, oreQualities)
}

// ParseEnergySource accepts machine names and UI labels ("Coal-based grid").
func ParseEnergySource(s string) (EnergySource, error) {
	return parseEnum(FieldEnergySource, s, energySources)
}

func ParseEndOfLife(s string) (EndOfLife, error) {
	return parseEnum(FieldEndOfLife, s, endOfLifeOptions)
}

func ParseStoragePractice(s string) (StoragePractice, error) {
	return parseEnum(FieldStorage, s, storagePractices)
}

func (m Metal) String() string           { return nameOf(m, metals) }
func (r ProductionRoute) String() string { return nameOf(r, routes) }
func (q OreQuality) String() string      { return nameOf(q, oreQualities) }
func (s EnergySource) String() string    { return nameOf(s, energySources) }
func (e EndOfLife) String() string       { return nameOf(e, endOfLifeOptions) }
func (s StoragePractice) String() string { return nameOf(s, storagePractices) }

// Label returns the display label, e.g. "Coal-based grid".
func (m Metal) Label() string           { return labelOf(m, metals) }
func (r ProductionRoute) Label() string { return labelOf(r, routes) }
func (q OreQuality) Label() string      { return labelOf(q, oreQualities) }
func (s EnergySource) Label() string    { return labelOf(s, energySources) }
func (e EndOfLife) Label() string       { return labelOf(e, endOfLifeOptions) }
func (s StoragePractice) Label() string { return labelOf(s, storagePractices) }

// MarshalText encodes enums by machine name so JSON and YAML stay readable.
func (m Metal) MarshalText() ([]byte, error)           { return []byte(m.String()), nil }
func (r ProductionRoute) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
func (q OreQuality) MarshalText() ([]byte, error)      { return []byte(q.String()), nil }
func (s EnergySource) MarshalText() ([]byte, error)    { return []byte(s.String()), nil }
func (e EndOfLife) MarshalText() ([]byte, error)       { return []byte(e.String()), nil }
func (s StoragePractice) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (m *Metal) UnmarshalText(b []byte) (err error) {
	*m, err = ParseMetal(string(b))
	return err
}

func (r *ProductionRoute) UnmarshalText(b []byte) (err error) {
	*r, err = ParseProductionRoute(string(b))
	return err
}

func (q *OreQuality) UnmarshalText(b []byte) (err error) {
	*q, err = ParseOreQuality(string(b))
	return err
}

func (s *EnergySource) UnmarshalText(b []byte) (err error) {
	*s, err = ParseEnergySource(string(b))
	return err
}

func (e *EndOfLife) UnmarshalText(b []byte) (err error) {
	*e, err = ParseEndOfLife(string(b))
	return err
}

func (s *StoragePractice) UnmarshalText(b []byte) (err error) {
	*s, err = ParseStoragePractice(string(b))
	return err
}

// Unit returns the by-product unit ("t" or "kg").
func (k ByProductKind) Unit() string {
	if k == SO2Kg {
		return "kg"
	}
	return "t"
}

// String returns "red_mud_tonnes" or "so2_kg".
func (k ByProductKind) String() string {
	switch k {
	case RedMudTonnes:
		return "red_mud_tonnes"
	case SO2Kg:
		return "so2_kg"
	}
	return "unknown"
}

// Label returns a display label such as "Red mud (t)".
func (k ByProductKind) Label() string {
	switch k {
	case RedMudTonnes:
		return "Red mud (t)"
	case SO2Kg:
		return "SO2 (kg)"
	}
	return "Unknown"
}

func (k ByProductKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
