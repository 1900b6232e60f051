package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/coregen"
	"github.com/coregx/coregen/batch"
	"github.com/coregx/coregen/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check SCHEMA...",
	Short: "Compile every column of one or more schemas",
	Long: `Loads each schema and compiles every column pattern without generating
anything. Prints the output length bounds of each column.

Examples:
  coregen check people.toml
  coregen check schemas/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		s, err := schema.Load(path)
		if err == nil {
			err = checkColumns(cmd, s)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d columns)\n", path, len(s.Columns))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schemas failed", failed, len(args))
	}
	return nil
}

func checkColumns(cmd *cobra.Command, s *schema.Schema) error {
	g, err := batch.Compile(s.BatchColumns(), coregen.DefaultConfig())
	if err != nil {
		var ce *batch.CompileError
		if errors.As(err, &ce) {
			logger.Debug("column failed", "column", ce.Column, "index", ce.Index)
		}
		return err
	}
	for i, name := range g.Columns() {
		lo, hi := g.Pattern(i).LengthBounds()
		fmt.Fprintf(cmd.OutOrStdout(), "     %-20s %d..%d\n", name, lo, hi)
	}
	return nil
}
