package cmd

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/coregen"
	"github.com/coregx/coregen/batch"
	"github.com/coregx/coregen/internal/term"
	"github.com/coregx/coregen/schema"
	"github.com/coregx/coregen/sink"
)

const defaultRows = 10

var (
	genSchema      string
	genRows        int
	genSeed        uint64
	genWorkers     int
	genMaxLength   int
	genMaxAttempts int
	genRepeatLimit uint32
	genOutput      string
	genFormat      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill a table from a schema",
	Long: `Loads a schema, compiles its columns and generates a table.

The row count and seed default to the values in the schema. Without a seed
anywhere a time-based one is used; pass -v to see it in the run log. The
same seed always yields the same table.

Output goes to stdout unless -o names a file. The format follows --format,
then the file extension, and for stdout is an aligned text table on a
terminal and CSV otherwise. SQLite needs a file and appends to it.

Examples:
  coregen generate -s people.toml
  coregen generate -s people.yaml -n 1000 --seed 42 -o people.csv
  coregen generate -s people.cgs -n 500 -o runs.sqlite`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genSchema, "schema", "s", "", "schema file (.toml, .yaml, .json, .cgs)")
	generateCmd.Flags().IntVarP(&genRows, "rows", "n", 0, "number of rows (default: schema rows or 10)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "random seed (default: schema seed or time-based)")
	generateCmd.Flags().IntVarP(&genWorkers, "workers", "w", 0, "worker goroutines (0 = GOMAXPROCS)")
	generateCmd.Flags().IntVar(&genMaxLength, "max-length", 255, "maximum value length in bytes")
	generateCmd.Flags().IntVar(&genMaxAttempts, "max-attempts", 100, "redraws allowed for an excluded value")
	generateCmd.Flags().Uint32Var(&genRepeatLimit, "repeat-limit", 10, "upper bound for *, + and {m,}")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "-", "output file, - for stdout")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "output format (csv, json, xml, sqlite, text)")

	_ = generateCmd.MarkFlagRequired("schema")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := schema.Load(genSchema)
	if err != nil {
		return err
	}

	config := coregen.DefaultConfig().WithRepeatLimit(genRepeatLimit)
	gen, err := batch.Compile(s.BatchColumns(), config)
	if err != nil {
		return err
	}

	opts := batch.DefaultOptions()
	opts.Rows = resolveRows(cmd, s)
	opts.Seed = resolveSeed(cmd, s)
	opts.Workers = genWorkers
	opts.MaxLength = genMaxLength
	opts.MaxAttempts = genMaxAttempts
	opts.Logger = logger

	format, err := outputFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if genOutput == "-" && format == sink.SQLite {
		return errors.New("sqlite output needs a file, use -o")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	table, err := gen.Generate(ctx, opts)
	if err != nil {
		return err
	}

	if genOutput == "-" {
		return sink.Write(cmd.OutOrStdout(), format, table)
	}
	return sink.WriteFile(ctx, genOutput, format, table, logger)
}

func resolveRows(cmd *cobra.Command, s *schema.Schema) int {
	switch {
	case cmd.Flags().Changed("rows"):
		return genRows
	case s.Rows > 0:
		return s.Rows
	default:
		return defaultRows
	}
}

func resolveSeed(cmd *cobra.Command, s *schema.Schema) uint64 {
	switch {
	case cmd.Flags().Changed("seed"):
		return genSeed
	case s.Seed != nil:
		return *s.Seed
	default:
		return uint64(time.Now().UnixNano())
	}
}

// outputFormat picks the sink format from --format, the output path, or
// whether stdout is a terminal.
func outputFormat(stdout io.Writer) (sink.Format, error) {
	if genFormat != "" {
		return sink.ParseFormat(genFormat)
	}
	if genOutput != "-" {
		return sink.FormatOf(genOutput)
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(f.Fd()) {
		return sink.Text, nil
	}
	return sink.CSV, nil
}

