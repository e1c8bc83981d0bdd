package factors

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/sustainamine/internal/lca"
)

//go:embed data/factors.yaml
var defaultFactorsYAML []byte

// Supported file and output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for file extensions or formats other than
// YAML and JSON.
var ErrUnsupportedFormat = errors.New("unsupported factor format")

// Loader resolves factor tables. The embedded defaults are parsed once and
// shared; every returned table is an independent copy.
type Loader struct {
	logger zerolog.Logger

	// Thread-safe initialization
	once     sync.Once
	defaults lca.FactorTable
	err      error
}

// NewLoader creates a Loader that logs through logger.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// init parses the embedded defaults exactly once.
func (l *Loader) init() error {
	l.once.Do(func() {
		table, err := Parse(bytes.NewReader(defaultFactorsYAML), FormatYAML, lca.FactorTable{})
		if err != nil {
			l.err = fmt.Errorf("failed to parse embedded factors: %w", err)
			return
		}
		l.defaults = table
		l.logger.Debug().Msg("embedded factor table loaded")
	})
	return l.err
}

// Defaults returns the embedded factor table.
func (l *Loader) Defaults() (lca.FactorTable, error) {
	if err := l.init(); err != nil {
		return lca.FactorTable{}, err
	}
	return l.defaults, nil
}

// Load returns the defaults when path is empty, otherwise the file at path
// overlaid on the defaults. The format follows the file extension.
func (l *Loader) Load(path string) (lca.FactorTable, error) {
	defaults, err := l.Defaults()
	if err != nil {
		return lca.FactorTable{}, err
	}
	if path == "" {
		return defaults, nil
	}

	format, err := FormatOf(path)
	if err != nil {
		return lca.FactorTable{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return lca.FactorTable{}, fmt.Errorf("failed to open factor file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("failed to close factor file")
		}
	}()

	table, err := Parse(f, format, defaults)
	if err != nil {
		return lca.FactorTable{}, fmt.Errorf("factor file %s: %w", path, err)
	}

	l.logger.Info().
		Str("path", path).
		Str("format", format).
		Msg("factor table overridden from file")

	return table, nil
}

// FormatOf maps a file extension to FormatYAML or FormatJSON.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Parse decodes a factor document from r, overlays it on base, and validates
// the result. Unknown keys are rejected.
func Parse(r io.Reader, format string, base lca.FactorTable) (lca.FactorTable, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return lca.FactorTable{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return lca.FactorTable{}, fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return lca.FactorTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	table, err := doc.apply(base)
	if err != nil {
		return lca.FactorTable{}, err
	}
	if err := table.Validate(); err != nil {
		return lca.FactorTable{}, err
	}
	return table, nil
}

// Marshal renders the complete table in format.
func Marshal(t lca.FactorTable, format string) ([]byte, error) {
	doc := documentOf(t)
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
