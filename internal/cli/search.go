package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TimelordUK/colgrep/internal/config"
	"github.com/TimelordUK/colgrep/internal/logging"
	"github.com/TimelordUK/colgrep/internal/search"
)

type searchOptions struct {
	start    int
	absolute bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search FILE PATTERN",
		Short: "Print the numbers of matching lines in a 5000 line window",
		Long: `Scan at most 5000 lines of FILE, starting at --start, and print the
number of each line matching PATTERN. Numbers are relative to the window,
so 1 is the start line, unless --absolute is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts.cfg, so, args[0], args[1], cmd.OutOrStdout())
		},
	}

	addSearchFlags(cmd.Flags())
	cmd.Flags().IntVarP(&so.start, "start", "s", 1, "1-based line the window starts at")
	cmd.Flags().BoolVarP(&so.absolute, "absolute", "a", false, "Print 1-based file line numbers")
	return cmd
}

func runSearch(cmd *cobra.Command, cfg *config.Config, so *searchOptions, path, pattern string, out io.Writer) error {
	registry, err := newRegistry(config.NewStore(cfg), logging.L())
	if err != nil {
		return err
	}
	defer func() { _ = registry.Release() }()

	matches, err := registry.Search(cmd.Context(), path, pattern, so.start)
	if err != nil {
		return err
	}

	if so.absolute {
		for i, line := range search.Absolute(matches, so.start) {
			matches[i] = line + 1
		}
	}

	w := bufio.NewWriter(out)
	for _, n := range matches {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return w.Flush()
}
