package batch

import (
	"log/slog"

	"github.com/coregx/coregen"
)

// Options control one batch run.
//
// Example:
//
//	opts := batch.DefaultOptions()
//	opts.Rows = 1000
//	opts.Seed = 42
//	table, err := gen.Generate(ctx, opts)
type Options struct {
	// Rows is the number of rows to generate.
	// Default: 10
	Rows int

	// Seed selects the random streams. Row r always uses stream (Seed, r),
	// so a seed reproduces the same table for any worker count.
	// Default: 0
	Seed uint64

	// Workers is the number of goroutines generating rows.
	// 0 means runtime.GOMAXPROCS(0).
	// Default: 0
	Workers int

	// MaxLength caps every value, in bytes.
	// Default: 255
	MaxLength int

	// MaxAttempts bounds how often a value containing an excluded string is
	// drawn again before the run fails with ErrExcludeExhausted.
	// Default: 100
	MaxAttempts int

	// Logger receives run events. nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		Rows:        10,
		MaxLength:   coregen.DefaultConfig().MaxLength,
		MaxAttempts: 100,
	}
}

// Validate checks if the options are usable.
//
// Valid ranges:
//   - Rows: 0 to 100,000,000
//   - Workers: 0 to 4,096
//   - MaxLength: 0 to 1 << 20
//   - MaxAttempts: 1 to 1,000,000
func (o Options) Validate() error {
	if o.Rows < 0 || o.Rows > 100_000_000 {
		return &coregen.ConfigError{Field: "Rows", Message: "must be between 0 and 100,000,000"}
	}
	if o.Workers < 0 || o.Workers > 4_096 {
		return &coregen.ConfigError{Field: "Workers", Message: "must be between 0 and 4,096"}
	}
	if o.MaxLength < 0 || o.MaxLength > 1<<20 {
		return &coregen.ConfigError{Field: "MaxLength", Message: "must be between 0 and 1,048,576"}
	}
	if o.MaxAttempts < 1 || o.MaxAttempts > 1_000_000 {
		return &coregen.ConfigError{Field: "MaxAttempts", Message: "must be between 1 and 1,000,000"}
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
