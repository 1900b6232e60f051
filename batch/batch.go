// Package batch fills tables of generated values.
//
// Each column has a name and a pattern. Every pattern is compiled once,
// before any row is generated, and a single invalid column fails the whole
// batch. Rows are generated in parallel; row r draws from its own random
// stream derived from (seed, r), so the table depends only on the columns
// and the seed.
//
// Example:
//
//	table, err := batch.GenerateBatch(ctx, []batch.Column{
//	    {Name: "id", Pattern: `[0-9]{3}`},
//	    {Name: "tag", Pattern: `(x|y)`},
//	}, batch.DefaultOptions())
package batch

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/coregx/coregen"
)

// Column defines one output column.
type Column struct {
	Name    string
	Pattern string

	// Exclude lists substrings no value may contain. A value containing
	// one is drawn again, up to Options.MaxAttempts times.
	Exclude []string
}

// Table is the row-major result of a batch run.
type Table struct {
	RunID   uuid.UUID
	Seed    uint64
	Columns []string
	Rows    [][]string
}

// Generator holds the compiled columns of a batch.
// It is immutable and may run any number of batches concurrently.
type Generator struct {
	columns  []Column
	names    []string
	patterns []*coregen.Pattern
	filters  []*excludeFilter
}

// Compile compiles every column. It fails on the first invalid column with a
// *CompileError naming it.
func Compile(columns []Column, config coregen.Config) (*Generator, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		columns:  columns,
		names:    make([]string, len(columns)),
		patterns: make([]*coregen.Pattern, len(columns)),
		filters:  make([]*excludeFilter, len(columns)),
	}
	seen := make(map[string]struct{}, len(columns))

	for i, col := range columns {
		fail := func(err error) error {
			return &CompileError{Column: col.Name, Index: i, Err: err}
		}
		if col.Name == "" {
			return nil, fail(ErrEmptyName)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fail(ErrDuplicateColumn)
		}
		seen[col.Name] = struct{}{}

		p, err := coregen.CompileWithConfig(col.Pattern, config)
		if err != nil {
			return nil, fail(err)
		}
		f, err := newExcludeFilter(col.Exclude)
		if err != nil {
			return nil, fail(err)
		}

		g.names[i] = col.Name
		g.patterns[i] = p
		g.filters[i] = f
	}
	return g, nil
}

// Columns returns the column names in order.
func (g *Generator) Columns() []string {
	return append([]string(nil), g.names...)
}

// Pattern returns the compiled pattern of column i.
func (g *Generator) Pattern(i int) *coregen.Pattern {
	return g.patterns[i]
}

// Generate produces opts.Rows rows. It stops early when ctx is cancelled or a
// value cannot be generated, and then returns no table.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.logger()
	runID := uuid.New()
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, opts.Rows))

	log.Info("batch started",
		"run_id", runID,
		"rows", opts.Rows,
		"columns", len(g.names),
		"workers", workers,
		"seed", opts.Seed)

	for i, p := range g.patterns {
		if lo, _ := p.LengthBounds(); lo > opts.MaxLength {
			log.Warn("column values will be truncated",
				"column", g.names[i],
				"min_len", lo,
				"max_length", opts.MaxLength)
		}
	}

	start := time.Now()
	rows := make([][]string, opts.Rows)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		next     atomic.Int64
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 0, opts.MaxLength)
			for ctx.Err() == nil {
				row := int(next.Add(1) - 1)
				if row >= opts.Rows {
					return
				}
				values, err := g.row(row, opts, buf, log)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				rows[row] = values
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		// cancelled by the caller
		return nil, context.Cause(ctx)
	}

	log.Info("batch completed",
		"run_id", runID,
		"rows", opts.Rows,
		"elapsed_ms", float64(time.Since(start).Microseconds())/1000)

	return &Table{
		RunID:   runID,
		Seed:    opts.Seed,
		Columns: g.Columns(),
		Rows:    rows,
	}, nil
}

// row generates every value of one row from the row's own stream.
func (g *Generator) row(row int, opts Options, buf []byte, log *slog.Logger) ([]string, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(row)))
	values := make([]string, len(g.patterns))

	for i, p := range g.patterns {
		f := g.filters[i]
		for attempt := 1; ; attempt++ {
			buf = p.AppendGenerate(buf[:0], opts.MaxLength, rng)
			if !f.rejects(buf) {
				values[i] = string(buf)
				break
			}
			if attempt >= opts.MaxAttempts {
				return nil, &GenerateError{Column: g.names[i], Row: row, Err: ErrExcludeExhausted}
			}
			log.Debug("excluded value redrawn", "column", g.names[i], "row", row, "attempt", attempt)
		}
	}
	return values, nil
}

// GenerateBatch compiles columns with the default configuration and generates
// opts.Rows rows. Nothing is generated if any column fails to compile.
func GenerateBatch(ctx context.Context, columns []Column, opts Options) (*Table, error) {
	g, err := Compile(columns, coregen.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, opts)
}
