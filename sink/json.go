package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coregx/coregen/batch"
)

// record is one row encoded as a JSON object with keys in column order.
type record struct {
	keys   []string
	values []string
}

func (r record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// WriteJSON writes the rows as an array of objects, indented by four spaces.
func WriteJSON(w io.Writer, t *batch.Table) error {
	records := make([]record, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = record{keys: t.Columns, values: row}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("sink: json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("sink: json: %w", err)
	}
	return nil
}
