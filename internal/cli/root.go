// Package cli provides the colgrep command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/TimelordUK/colgrep/internal/config"
	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/logging"
	"github.com/TimelordUK/colgrep/internal/plugin"
	"github.com/TimelordUK/colgrep/internal/search"
)

// rootOptions is shared by every subcommand
type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

// NewRootCmd creates the colgrep command with all subcommands attached
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:               "colgrep",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "View, cut and search log files by column",
		Long: `colgrep reshapes each line of a log through a column specification and
finds matching lines within a bounded window of the file.

Column specs are whitespace separated. In include mode each token is a
slice "lo:hi" over 0-based fields (negative values count from the end).
In exclude mode each token is a 1-based field number to drop.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.Flags())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default "+config.GetConfigPath()+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newViewCmd(opts),
		newCutCmd(opts),
		newSearchCmd(opts),
	)

	return cmd
}

func (o *rootOptions) load(fs *pflag.FlagSet) error {
	path := o.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := applyColumnFlags(fs, cfg); err != nil {
		return err
	}
	if err := applySearchFlags(fs, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

// addColumnFlags registers the column spec overrides on fs
func addColumnFlags(fs *pflag.FlagSet) {
	fs.StringP("columns", "f", "", "Column spec, e.g. \"0:2 -1:\" or \"2 -1\"")
	fs.StringP("mode", "m", "", "Column mode: include or exclude")
	fs.Bool("keep-last", false, "In exclude mode, also emit the last field")
}

// addSearchFlags registers the search option overrides on fs
func addSearchFlags(fs *pflag.FlagSet) {
	fs.BoolP("ignore-case", "i", false, "Case-insensitive matching")
	fs.BoolP("literal", "F", false, "Match the pattern as fixed text")
	fs.String("engine", "", "Regex engine: re2 or regexp2")
}

// applyColumnFlags copies column flags that were set on the command line
// into cfg. Flags the command does not define are ignored.
func applyColumnFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("columns") {
		v, err := fs.GetString("columns")
		if err != nil {
			return err
		}
		cfg.Columns.Spec = v
	}
	if fs.Changed("mode") {
		v, err := fs.GetString("mode")
		if err != nil {
			return err
		}
		cfg.Columns.Mode = v
	}
	if fs.Changed("keep-last") {
		v, err := fs.GetBool("keep-last")
		if err != nil {
			return err
		}
		cfg.Columns.KeepLastField = v
	}
	return nil
}

func applySearchFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("ignore-case") {
		v, err := fs.GetBool("ignore-case")
		if err != nil {
			return err
		}
		cfg.Search.IgnoreCase = v
	}
	if fs.Changed("literal") {
		v, err := fs.GetBool("literal")
		if err != nil {
			return err
		}
		cfg.Search.Literal = v
	}
	if fs.Changed("engine") {
		v, err := fs.GetString("engine")
		if err != nil {
			return err
		}
		cfg.Search.Engine = v
	}
	return nil
}

// newRegistry registers the column filter and the pattern searcher, both
// reading their settings from store on every call.
func newRegistry(store *config.Store, logger *zap.Logger) (*plugin.Registry, error) {
	registry := plugin.NewRegistry()
	if err := registry.Register(plugin.NewColumnFilter(store, logger)); err != nil {
		return nil, err
	}
	if err := registry.Register(plugin.NewPatternSearcher(store, search.NewIndexer(logger), logger)); err != nil {
		return nil, err
	}
	return registry, nil
}

// checkColumns returns the spec tokens that selection will skip
func checkColumns(cfg *config.Config) error {
	if err := fields.Check(cfg.ColumnSpec()); err != nil {
		return fmt.Errorf("column spec %q: %w", cfg.Columns.Spec, err)
	}
	return nil
}

// startLogging opens the log file named by cfg
func startLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	return logging.Initialize(cfg.LogDir(), level)
}
