package sink

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/coregx/coregen/batch"
)

// WriteCSV writes a header line followed by one record per row.
func WriteCSV(w io.Writer, t *batch.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("sink: csv: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("sink: csv: %w", err)
	}
	return nil
}
