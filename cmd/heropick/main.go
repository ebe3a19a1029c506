// Package main provides the CLI entrypoint for heropick.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/config"
	"github.com/verte-zerg/heropick/internal/logging"
	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/tui"
)

var (
	pickSpeed    string
	pickNoRepeat bool
	pickFilter   string
	rosterPath   string
	dbPath       string
	logLevel     string
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("heropick command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "heropick",
		Short:         "Random hero picker with a suspense reveal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPickerCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "custom roster TOML file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	addPickFlags(rootCmd)

	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPickFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pickSpeed, "speed", string(model.SpeedNormal), "animation speed (fast, normal, slow)")
	cmd.Flags().BoolVar(&pickNoRepeat, "no-repeat", false, "do not repeat heroes until the pool is exhausted")
	cmd.Flags().StringVar(&pickFilter, "filter", "all", "category filter (all, tank, dps, healer)")
}

func runPickerCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()
	ctx, err := withLogger(cmd.Context(), logFile, opts.cfg.LogLevel)
	if err != nil {
		return err
	}

	a, err := openApp(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	session, err := a.newSession(ctx, opts)
	if err != nil {
		return err
	}
	pslog.Ctx(ctx).Info("picker started", "heroes", session.Roster.Total(), "speed", string(session.Settings.Speed), "no_repeat", session.Settings.NoRepeat)

	m := tui.NewModel(ctx, session, a.persist, a.pickLog())
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
