package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coregx/coregen/batch"
)

// DataTable is the SQLite table generated rows are inserted into.
const DataTable = "data"

// WriteSQLite inserts the rows of t into the "data" table of the database at
// path, creating both if needed, and records the run in a "runs" table. All
// inserts share one transaction.
func WriteSQLite(ctx context.Context, path string, t *batch.Table) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return fmt.Errorf("sink: failed to open database: %w", err)
	}
	defer db.Close()

	if err := initSchema(ctx, db, t.Columns); err != nil {
		return fmt.Errorf("sink: failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sink: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(t.Columns) > 0 {
		if err := insertRows(ctx, tx, t); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, seed, row_count, columns, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.RunID.String(),
		strconv.FormatUint(t.Seed, 10),
		len(t.Rows),
		strings.Join(t.Columns, ","),
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sink: failed to record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sink: failed to commit: %w", err)
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB, columns []string) error {
	if len(columns) > 0 {
		defs := make([]string, len(columns))
		for i, c := range columns {
			defs[i] = quoteIdent(c) + " TEXT"
		}
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", DataTable, strings.Join(defs, ", "))
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}

	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		columns TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`)
	return err
}

func insertRows(ctx context.Context, tx *sql.Tx, t *batch.Table) error {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = quoteIdent(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		DataTable, strings.Join(names, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("sink: failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for r, row := range t.Rows {
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("sink: failed to insert row %d: %w", r, err)
		}
	}
	return nil
}

// quoteIdent quotes an SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
