package lca

// Form is an Input as entered by a person: enumerations are free text
// (machine names or display labels) and are resolved by Parse.
type Form struct {
	Metal               string  `json:"metal"`
	Route               string  `json:"route"`
	RecycledPercent     int     `json:"recycled_percent"`
	OreQuality          string  `json:"ore_quality"`
	EnergySource        string  `json:"energy_source"`
	TransportDistanceKm float64 `json:"transport_distance_km"`
	TransportTonnes     float64 `json:"transport_tonnes"`
	EndOfLife           string  `json:"end_of_life"`
	Storage             string  `json:"storage"`
}

// DefaultForm returns the values a new estimate form starts with.
func DefaultForm() Form {
	return Form{
		Metal:               Aluminium.Label(),
		Route:               Virgin.Label(),
		RecycledPercent:     30,
		OreQuality:          High.Label(),
		EnergySource:        CoalGrid.Label(),
		TransportDistanceKm: 200,
		TransportTonnes:     1,
		EndOfLife:           Landfill.Label(),
		Storage:             Authorized.Label(),
	}
}

// Parse resolves and checks every field in declaration order and reports the
// first offending one.
func (f Form) Parse() (Input, error) {
	var (
		in  Input
		err error
	)
	if in.Metal, err = ParseMetal(f.Metal); err != nil {
		return Input{}, err
	}
	if in.Route, err = ParseProductionRoute(f.Route); err != nil {
		return Input{}, err
	}
	if !validRecycledPercent(f.RecycledPercent) {
		return Input{}, invalid(FieldRecycledPercent, f.RecycledPercent, "must be between 0 and 100")
	}
	in.RecycledPercent = f.RecycledPercent
	if in.OreQuality, err = ParseOreQuality(f.OreQuality); err != nil {
		return Input{}, err
	}
	if in.EnergySource, err = ParseEnergySource(f.EnergySource); err != nil {
		return Input{}, err
	}
	if !validDistance(f.TransportDistanceKm) {
		return Input{}, invalid(FieldTransportDistanceKm, f.TransportDistanceKm, "must be a finite number >= 0")
	}
	in.TransportDistanceKm = f.TransportDistanceKm
	if !validTonnes(f.TransportTonnes) {
		return Input{}, invalid(FieldTransportTonnes, f.TransportTonnes, "must be a finite number >= 1")
	}
	in.TransportTonnes = f.TransportTonnes
	if in.EndOfLife, err = ParseEndOfLife(f.EndOfLife); err != nil {
		return Input{}, err
	}
	if in.Storage, err = ParseStoragePractice(f.Storage); err != nil {
		return Input{}, err
	}
	if err := Validate(in); err != nil {
		return Input{}, err
	}
	return in, nil
}
