package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcorbin/gograss/internal/logio"
)

var log logio.Logger

var (
	evalSrc  string
	verbose  bool
	dumpEnd  bool
	timeout  time.Duration
	maxSteps int
)

var rootCmd = &cobra.Command{
	Use:   "gograss [prog_file]",
	Short: "Grass interpreter",
	Long: `gograss evaluates programs in Grass, the grass-planting
programming language whose source is written with the letters w, W
and v (full-width forms included).

Examples:

  # Run a program file
  gograss planted.grass

  # Evaluate inline source
  gograss -e 'wvWWWWwww'

  # Trace every machine step to standard error
  gograss -v planted.grass`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runProg,
}

func init() {
	rootCmd.Flags().StringVarP(&evalSrc, "eval", "e", "", "evaluate inline source instead of reading a file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace machine steps to standard error")
	rootCmd.Flags().BoolVar(&dumpEnd, "dump", false, "print a machine dump after execution")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "specify a time limit")
	rootCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "halt after this many machine steps")
}

func main() {
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()
	log.ErrorIf(rootCmd.Execute())
}

func runProg(_ *cobra.Command, args []string) error {
	var src, name string
	switch {
	case evalSrc != "" && len(args) > 0:
		return errors.New("cannot combine --eval with a program file")
	case evalSrc != "":
		src, name = evalSrc, "<eval>"
	case len(args) == 1:
		name = args[0]
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read program: %w", err)
		}
		src = string(content)
	default:
		return errors.New("either provide a program file or use -e for inline source")
	}

	prog, err := Parse(src)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}

	opts := []VMOption{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
		WithStepLimit(maxSteps),
	}
	if verbose {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	vm, err := New(prog, opts...)
	if err != nil {
		return err
	}

	if dumpEnd {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer vmDumper{vm: vm, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return vm.Run(ctx)
}
