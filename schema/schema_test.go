package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/coregen/batch"
)

func seed(n uint64) *uint64 { return &n }

var wantSchema = &Schema{
	Rows: 100,
	Seed: seed(42),
	Columns: []Column{
		{Name: "id", Pattern: `[0-9]{6}`},
		{Name: "email", Pattern: `[a-z]{3,8}@example\.com`, Exclude: []string{"admin", "root"}},
	},
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, `
rows = 100
seed = 42

[[columns]]
name = "id"
pattern = '[0-9]{6}'

[[columns]]
name = "email"
pattern = '[a-z]{3,8}@example\.com'
exclude = ["admin", "root"]
`},
		{"yaml", FormatYAML, `
rows: 100
seed: 42
columns:
  - name: id
    pattern: '[0-9]{6}'
  - name: email
    pattern: '[a-z]{3,8}@example\.com'
    exclude: [admin, root]
`},
		{"json", FormatJSON, `{
  "rows": 100,
  "seed": 42,
  "columns": [
    {"name": "id", "pattern": "[0-9]{6}"},
    {"name": "email", "pattern": "[a-z]{3,8}@example\\.com", "exclude": ["admin", "root"]}
  ]
}`},
		{"cgs", FormatDSL, "// defaults\n@rows 100;\n@seed 42;\n\nid = `[0-9]{6}`;\n" +
			`email = "[a-z]{3,8}@example\\.com" exclude "admin", ` + "`root`;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if diff := cmp.Diff(wantSchema, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLegacyJSON(t *testing.T) {
	data := `{
  "headers": ["name", "zip"],
  "patterns": {"zip": "\\d{5}", "name": "[A-Z][a-z]+"}
}`
	got, err := Parse([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Column{
		{Name: "name", Pattern: `[A-Z][a-z]+`},
		{Name: "zip", Pattern: `\d{5}`},
	}
	if diff := cmp.Diff(want, got.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if got.Seed != nil || got.Rows != 0 {
		t.Errorf("defaults = (%d, %v), want unset", got.Rows, got.Seed)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr error
		wantMsg string
	}{
		{"toml unknown key", FormatTOML, "[[columns]]\nname = \"a\"\npattern = \"x\"\ncolour = \"red\"\n", nil, "unknown key"},
		{"toml syntax", FormatTOML, "[[columns]\n", nil, "toml"},
		{"yaml unknown key", FormatYAML, "columns:\n  - name: a\n    patern: x\n", nil, "patern"},
		{"json unknown key", FormatJSON, `{"columns": [], "extra": 1}`, nil, "extra"},
		{"json missing pattern", FormatJSON, `{"headers": ["a"], "patterns": {}}`, nil, `no pattern for header "a"`},
		{"json both shapes", FormatJSON, `{"headers": ["a"], "patterns": {"a": "x"}, "columns": [{"name": "b", "pattern": "y"}]}`, nil, "both"},
		{"cgs syntax", FormatDSL, "id = [0-9];", nil, "cgs"},
		{"cgs missing semicolon", FormatDSL, "id = `x`", nil, "cgs"},
		{"no columns", FormatYAML, "rows: 3\n", ErrNoColumns, ""},
		{"empty document", FormatYAML, "", ErrNoColumns, ""},
		{"empty name", FormatJSON, `{"columns": [{"name": "", "pattern": "x"}]}`, ErrEmptyName, ""},
		{"negative rows", FormatTOML, "rows = -1\n[[columns]]\nname = \"a\"\npattern = \"x\"\n", ErrNegativeRows, ""},
		{"bad format", Format(9), "", ErrUnknownFormat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatalf("Parse = %+v, want error", s)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"dir/a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"a.json", FormatJSON},
		{"a.cgs", FormatDSL},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatOf("a.csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatOf(a.csv) error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.cgs")
	if err := os.WriteFile(path, []byte("name = `[A-Z][a-z]{2,6}`;\nage = `[1-9][0-9]`;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []batch.Column{
		{Name: "name", Pattern: `[A-Z][a-z]{2,6}`},
		{Name: "age", Pattern: `[1-9][0-9]`},
	}
	if diff := cmp.Diff(want, s.BatchColumns()); diff != "" {
		t.Errorf("BatchColumns mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"columns": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !errors.Is(err, ErrNoColumns) || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("Load(bad) error = %v, want ErrNoColumns naming the file", err)
	}
}
