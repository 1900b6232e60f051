// Package schema loads column definitions for batch generation.
//
// A schema lists named columns, each with a pattern and optional excluded
// substrings, plus an optional default row count and seed. Four encodings
// are accepted, chosen by file extension:
//
//	.toml        [[columns]] tables
//	.yaml .yml   a columns: list
//	.json        {"columns": [...]} or the legacy {"headers": [...], "patterns": {...}}
//	.cgs         a line-oriented text format, see ParseDSL
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/coregx/coregen/batch"
)

// Schema is a decoded column definition file.
type Schema struct {
	// Rows is the default row count. Zero means the caller decides.
	Rows int `toml:"rows" yaml:"rows" json:"rows,omitempty"`

	// Seed is the default seed. nil means the caller decides.
	Seed *uint64 `toml:"seed" yaml:"seed" json:"seed,omitempty"`

	Columns []Column `toml:"columns" yaml:"columns" json:"columns"`
}

// Column is one column definition.
type Column struct {
	Name    string   `toml:"name" yaml:"name" json:"name"`
	Pattern string   `toml:"pattern" yaml:"pattern" json:"pattern"`
	Exclude []string `toml:"exclude" yaml:"exclude" json:"exclude,omitempty"`
}

// Format identifies a schema encoding.
type Format uint8

const (
	FormatTOML Format = iota + 1
	FormatYAML
	FormatJSON
	FormatDSL
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatDSL:
		return "cgs"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// Errors reported for structurally invalid schemas.
var (
	ErrUnknownFormat = errors.New("schema: unknown file format")
	ErrNoColumns     = errors.New("schema: no columns defined")
	ErrEmptyName     = errors.New("schema: column without a name")
	ErrNegativeRows  = errors.New("schema: negative row count")
)

// FormatOf picks the format for a file name by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cgs":
		return FormatDSL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the schema at path.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a schema. Unknown keys are errors in every
// format.
func Parse(data []byte, format Format) (*Schema, error) {
	var (
		s   *Schema
		err error
	)
	switch format {
	case FormatTOML:
		s, err = parseTOML(data)
	case FormatYAML:
		s, err = parseYAML(data)
	case FormatJSON:
		s, err = parseJSON(data)
	case FormatDSL:
		s, err = ParseDSL(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTOML(data []byte) (*Schema, error) {
	var s Schema
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("schema: toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("schema: toml: unknown key %q", undecoded[0].String())
	}
	return &s, nil
}

func parseYAML(data []byte) (*Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: yaml: %w", err)
	}
	return &s, nil
}

// Validate checks the schema for missing names and columns. Pattern syntax is
// checked when the columns are compiled.
func (s *Schema) Validate() error {
	if s.Rows < 0 {
		return ErrNegativeRows
	}
	if len(s.Columns) == 0 {
		return ErrNoColumns
	}
	for i, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("%w (column %d)", ErrEmptyName, i)
		}
	}
	return nil
}

// BatchColumns converts the schema for batch generation.
func (s *Schema) BatchColumns() []batch.Column {
	cols := make([]batch.Column, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = batch.Column{Name: c.Name, Pattern: c.Pattern, Exclude: c.Exclude}
	}
	return cols
}
