package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonSchema accepts both JSON shapes: the native columns list and the legacy
// header list with a pattern map.
type jsonSchema struct {
	Rows     int               `json:"rows"`
	Seed     *uint64           `json:"seed"`
	Columns  []Column          `json:"columns"`
	Headers  []string          `json:"headers"`
	Patterns map[string]string `json:"patterns"`
}

func parseJSON(data []byte) (*Schema, error) {
	var js jsonSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&js); err != nil {
		return nil, fmt.Errorf("schema: json: %w", err)
	}

	s := &Schema{Rows: js.Rows, Seed: js.Seed, Columns: js.Columns}
	if len(js.Headers) == 0 && len(js.Patterns) == 0 {
		return s, nil
	}
	if len(js.Columns) > 0 {
		return nil, fmt.Errorf("schema: json: both columns and headers given")
	}

	for _, h := range js.Headers {
		pattern, ok := js.Patterns[h]
		if !ok {
			return nil, fmt.Errorf("schema: json: no pattern for header %q", h)
		}
		s.Columns = append(s.Columns, Column{Name: h, Pattern: pattern})
	}
	return s, nil
}
