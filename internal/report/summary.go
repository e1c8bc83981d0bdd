// Package report renders lca estimates for people and machines. It never
// computes; it only formats an lca.Input and the lca.Result derived from it.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rshade/sustainamine/internal/lca"
)

// Output formats accepted by Write.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Summary is the flat, display-ready view of one estimate.
type Summary struct {
	Metal                    string   `json:"metal"`
	Route                    string   `json:"route"`
	RecycledPercent          int      `json:"recycled_percent"`
	EnergySource             string   `json:"energy_source"`
	Transport                string   `json:"transport"`
	CO2PerKg                 float64  `json:"co2_per_kg"`
	CO2PerTonneInclTransport float64  `json:"co2_per_tonne_incl_transport"`
	CircularityScore         float64  `json:"circularity_score"`
	ByProduct                string   `json:"by_product"`
	ByProductValue           float64  `json:"by_product_value"`
	RecyclingCostUSD         float64  `json:"recycling_cost_usd"`
	Flags                    []string `json:"flags"`
}

// NewSummary flattens in and res.
func NewSummary(in lca.Input, res lca.Result) Summary {
	flags := make([]string, 0, len(res.Flags))
	for _, f := range res.Flags {
		flags = append(flags, string(f))
	}
	return Summary{
		Metal:                    in.Metal.Label(),
		Route:                    in.Route.Label(),
		RecycledPercent:          in.RecycledPercent,
		EnergySource:             in.EnergySource.Label(),
		Transport:                fmt.Sprintf("%s km × %s t", formatFloat(in.TransportDistanceKm), formatFloat(in.TransportTonnes)),
		CO2PerKg:                 res.CO2PerKg,
		CO2PerTonneInclTransport: res.CO2PerTonneInclTransport,
		CircularityScore:         res.CircularityScore,
		ByProduct:                res.ByProduct.Kind.Label(),
		ByProductValue:           res.ByProduct.Value,
		RecyclingCostUSD:         res.RecyclingCostUSD,
		Flags:                    flags,
	}
}

// Rows returns the summary as label/value pairs in display order.
func (s Summary) Rows() [][2]string {
	return [][2]string{
		{"Metal", s.Metal},
		{"Production route", s.Route},
		{"Recycled content (%)", strconv.Itoa(s.RecycledPercent)},
		{"Energy source", s.EnergySource},
		{"Transport", s.Transport},
		{"CO2e per kg (kg)", formatFloat(s.CO2PerKg)},
		{"CO2e per tonne incl. transport (kg)", formatFloat(s.CO2PerTonneInclTransport)},
		{"Circularity score", formatFloat(s.CircularityScore)},
		{s.ByProduct, formatFloat(s.ByProductValue)},
		{"Recycling cost (USD)", formatFloat(s.RecyclingCostUSD)},
	}
}

// Write renders the summary of in/res to w in format.
func Write(w io.Writer, format string, in lca.Input, res lca.Result) error {
	s := NewSummary(in, res)
	switch format {
	case FormatText, "":
		return WriteText(w, s)
	case FormatMarkdown:
		return WriteMarkdown(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	}
	return fmt.Errorf("unsupported report format %q", format)
}

func (s Summary) table() table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Metric", "Value"})
	for _, r := range s.Rows() {
		tw.AppendRow(table.Row{r[0], r[1]})
	}
	return tw
}

// WriteText writes a boxed table followed by the compliance flags.
func WriteText(w io.Writer, s Summary) error {
	tw := s.table()
	tw.SetStyle(table.StyleLight)
	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}
	return writeFlags(w, s.Flags, "- ")
}

// WriteMarkdown writes a Markdown table and a flag list.
func WriteMarkdown(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, s.table().RenderMarkdown()); err != nil {
		return err
	}
	return writeFlags(w, s.Flags, "* ")
}

func writeFlags(w io.Writer, flags []string, bullet string) error {
	if len(flags) == 0 {
		_, err := fmt.Fprintln(w, "\nCompliance: no flags")
		return err
	}
	if _, err := fmt.Fprintln(w, "\nCompliance flags:"); err != nil {
		return err
	}
	for _, f := range flags {
		if _, err := fmt.Fprintf(w, "%s%s\n", bullet, f); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// formatFloat formats a float for display.
// If the float is an integer, it is formatted as an integer.
// Otherwise, it is formatted with 2 decimal places.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%.2f", f)
}
