package sink

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/coregx/coregen/batch"
)

// WriteText writes an aligned table for reading in a terminal.
// Tabs and newlines inside values are shown as spaces.
func WriteText(w io.Writer, t *batch.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeLine(tw, t.Columns)

	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		rule[i] = strings.Repeat("-", max(len(c), 1))
	}
	writeLine(tw, rule)

	for _, row := range t.Rows {
		writeLine(tw, row)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("sink: text: %w", err)
	}
	return nil
}

var cellReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func writeLine(tw *tabwriter.Writer, cells []string) {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = cellReplacer.Replace(c)
	}
	// errors resurface from Flush
	_, _ = io.WriteString(tw, strings.Join(clean, "\t")+"\n")
}
