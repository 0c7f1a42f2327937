package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TimelordUK/colgrep/internal/config"
	"github.com/TimelordUK/colgrep/internal/logging"
)

const maxLineSize = 1024 * 1024

func newCutCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "cut [FILE]",
		Short: "Print each line of FILE with the column spec applied",
		Long: `Print each line of FILE, or standard input, reshaped by the column spec.

  colgrep cut -f "0:2 -1:" app.log     first two fields and the last
  colgrep cut -m exclude -f "2" app.log drop the second field`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strict {
				if err := checkColumns(opts.cfg); err != nil {
					return err
				}
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			return runCut(opts.cfg, in, cmd.OutOrStdout())
		},
	}

	addColumnFlags(cmd.Flags())
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on spec tokens that would be ignored")
	return cmd
}

// runCut streams in to out through the column filter
func runCut(cfg *config.Config, in io.Reader, out io.Writer) error {
	registry, err := newRegistry(config.NewStore(cfg), logging.L())
	if err != nil {
		return err
	}
	defer func() { _ = registry.Release() }()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, registry.DisplayLine(scanner.Text())); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return w.Flush()
}
