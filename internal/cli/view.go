package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TimelordUK/colgrep/internal/config"
	"github.com/TimelordUK/colgrep/internal/logging"
	"github.com/TimelordUK/colgrep/internal/ui"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Page through a file with columns applied",
		Long: `Open FILE in the viewer. Every displayed line passes through the column
spec. "/" searches the next 5000 lines from the top of the screen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(opts, args[0])
		},
	}

	addColumnFlags(cmd.Flags())
	addSearchFlags(cmd.Flags())
	return cmd
}

func runView(opts *rootOptions, path string) error {
	if err := startLogging(opts.cfg); err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	logger := logging.L()
	logger.Info("opening", zap.String("path", path), zap.String("config", opts.configPath))

	store := config.NewStore(opts.cfg)
	registry, err := newRegistry(store, logger)
	if err != nil {
		return err
	}

	model, err := ui.NewModel(ui.ModelOptions{
		Filepath: path,
		Store:    store,
		Registry: registry,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := model.Close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
