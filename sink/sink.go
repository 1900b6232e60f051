// Package sink writes generated tables to files and streams.
//
// Supported formats are CSV, JSON (an array of objects in column order), XML
// (<root><record>...</record></root>), SQLite (table "data") and aligned
// text for terminals.
package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/coregx/coregen/batch"
)

// Format identifies an output encoding.
type Format uint8

const (
	CSV Format = iota + 1
	JSON
	XML
	SQLite
	Text
)

// ErrUnknownFormat is returned for unrecognised format names and extensions.
var ErrUnknownFormat = errors.New("sink: unknown format")

// ErrNotStreamable is returned when a file-only format is written to a stream.
var ErrNotStreamable = errors.New("sink: format can only be written to a file")

var formatNames = map[Format]string{
	CSV:    "csv",
	JSON:   "json",
	XML:    "xml",
	SQLite: "sqlite",
	Text:   "text",
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(name)
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	if name == "txt" {
		return Text, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatOf picks the format for a file name by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".json":
		return JSON, nil
	case ".xml":
		return XML, nil
	case ".sqlite", ".sqlite3", ".db":
		return SQLite, nil
	case ".txt":
		return Text, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Write encodes t to w. SQLite cannot be streamed.
func Write(w io.Writer, f Format, t *batch.Table) error {
	switch f {
	case CSV:
		return WriteCSV(w, t)
	case JSON:
		return WriteJSON(w, t)
	case XML:
		return WriteXML(w, t)
	case Text:
		return WriteText(w, t)
	case SQLite:
		return ErrNotStreamable
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// WriteFile writes t to path in format f, replacing any existing file except
// for SQLite, which appends to the database.
func WriteFile(ctx context.Context, path string, f Format, t *batch.Table, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var err error
	if f == SQLite {
		err = WriteSQLite(ctx, path, t)
	} else {
		err = writeFile(path, f, t)
	}
	if err != nil {
		return err
	}

	log.Info("sink written", "format", f.String(), "path", path, "rows", len(t.Rows))
	return nil
}

func writeFile(path string, f Format, t *batch.Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sink: %w", cerr)
		}
	}()

	w := bufio.NewWriterSize(file, 8192)
	if err := Write(w, f, t); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}
