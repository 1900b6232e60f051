package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/coregen"
)

var (
	sampleCount       int
	sampleSeed        uint64
	sampleMaxLength   int
	sampleRepeatLimit uint32
	sampleBounds      bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample PATTERN",
	Short: "Print samples of a pattern",
	Long: `Compiles one pattern and prints one sample per line.

Examples:
  coregen sample '[A-Z][a-z]{2,8}'
  coregen sample -n 20 --seed 7 '(cat|dog)s?'
  coregen sample --bounds '\d{3}-\d{4}'`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 5, "number of samples")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0, "random seed (default: time-based)")
	sampleCmd.Flags().IntVar(&sampleMaxLength, "max-length", 255, "maximum sample length in bytes")
	sampleCmd.Flags().Uint32Var(&sampleRepeatLimit, "repeat-limit", 10, "upper bound for *, + and {m,}")
	sampleCmd.Flags().BoolVar(&sampleBounds, "bounds", false, "print the length bounds before the samples")
}

func runSample(cmd *cobra.Command, args []string) error {
	config := coregen.DefaultConfig().
		WithRepeatLimit(sampleRepeatLimit).
		WithMaxLength(sampleMaxLength)

	p, err := coregen.CompileWithConfig(args[0], config)
	if err != nil {
		return err
	}

	seed := sampleSeed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("sampling", "pattern", p.String(), "seed", seed, "count", sampleCount)

	out := cmd.OutOrStdout()
	if sampleBounds {
		lo, hi := p.LengthBounds()
		fmt.Fprintf(out, "# length %d..%d bytes\n", lo, hi)
	}

	rng := coregen.NewRand(seed)
	for i := 0; i < sampleCount; i++ {
		fmt.Fprintln(out, p.Generate(rng))
	}
	return nil
}
