package schema

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// The .cgs format is a list of statements ending in ';':
//
//	// defaults, both optional
//	@rows 100;
//	@seed 42;
//
//	id    = `[0-9]{6}`;
//	email = "[a-z]{3,8}@example\\.com" exclude "admin", "root";
//
// Patterns are Go string literals, so raw backquoted strings avoid doubling
// backslashes. Comments use // or /* */.
type dslFile struct {
	Entries []*dslEntry `parser:"@@*"`
}

type dslEntry struct {
	Directive *dslDirective `parser:"  '@' @@ ';'"`
	Column    *dslColumn    `parser:"| @@ ';'"`
}

type dslDirective struct {
	Rows *int    `parser:"  'rows' @Int"`
	Seed *uint64 `parser:"| 'seed' @Int"`
}

type dslColumn struct {
	Name    string   `parser:"@(Ident | String) '='"`
	Pattern string   `parser:"@(String | RawString)"`
	Exclude []string `parser:"( 'exclude' @(String | RawString) ( ',' @(String | RawString) )* )?"`
}

var dslParser = participle.MustBuild[dslFile](
	participle.Unquote("String", "RawString"),
)

// ParseDSL decodes the .cgs text format. It does not validate the result.
func ParseDSL(data []byte) (*Schema, error) {
	file, err := dslParser.ParseBytes("", data)
	if err != nil {
		return nil, fmt.Errorf("schema: cgs: %w", err)
	}

	s := &Schema{}
	for _, e := range file.Entries {
		switch {
		case e.Directive != nil && e.Directive.Rows != nil:
			s.Rows = *e.Directive.Rows
		case e.Directive != nil && e.Directive.Seed != nil:
			s.Seed = e.Directive.Seed
		case e.Column != nil:
			s.Columns = append(s.Columns, Column{
				Name:    e.Column.Name,
				Pattern: e.Column.Pattern,
				Exclude: e.Column.Exclude,
			})
		}
	}
	return s, nil
}
