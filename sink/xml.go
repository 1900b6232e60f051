package sink

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/coregx/coregen/batch"
)

// WriteXML writes <root> holding one <record> per row, with one element per
// column. Column names that are not valid element names are sanitised.
func WriteXML(w io.Writer, t *batch.Table) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("sink: xml: %w", err)
	}

	names := make([]xml.Name, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = xml.Name{Local: ElementName(c)}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "root"}}
	rec := xml.StartElement{Name: xml.Name{Local: "record"}}

	tokens := []xml.Token{root}
	for _, row := range t.Rows {
		tokens = append(tokens, rec)
		for i, v := range row {
			start := xml.StartElement{Name: names[i]}
			tokens = append(tokens, start, xml.CharData(v), start.End())
		}
		tokens = append(tokens, rec.End())

		if err := encodeTokens(enc, tokens); err != nil {
			return err
		}
		tokens = tokens[:0]
	}
	tokens = append(tokens, root.End())
	if err := encodeTokens(enc, tokens); err != nil {
		return err
	}

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("sink: xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeTokens(enc *xml.Encoder, tokens []xml.Token) error {
	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return fmt.Errorf("sink: xml: %w", err)
		}
	}
	return nil
}

// ElementName turns a column name into a valid XML element name. Invalid
// characters become '_', and a name that cannot start an element gets a
// leading '_'.
func ElementName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
			b.WriteRune(r)
		case i == 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		s = "_" + s
	}
	return s
}
