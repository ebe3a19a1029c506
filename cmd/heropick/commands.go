package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/heropick/internal/config"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/stats"
	"github.com/verte-zerg/heropick/internal/statsui"
)

var (
	rosterFilter string
	rosterSearch string
	historyClear bool
	historyLimit int
	statsPlain   bool
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List the heroes in the roster",
		Args:  cobra.NoArgs,
		RunE:  runRosterCmd,
	}
	cmd.Flags().StringVar(&rosterFilter, "filter", "all", "category filter (all, tank, dps, healer)")
	cmd.Flags().StringVar(&rosterSearch, "search", "", "only list heroes whose name contains this text")
	return cmd
}

func runRosterCmd(cmd *cobra.Command, _ []string) error {
	filter, err := picker.ParseFilter(rosterFilter)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "roster", &rosterPath, fileCfg.Picker.Roster)
	r, err := loadRoster(expandHome(rosterPath))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	entries := picker.Candidates(r, filter, rosterSearch)
	return stats.RenderRoster(out, entries, stats.ShouldUseColor(out))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent picks",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyClear, "clear", false, "clear the history and the no-repeat pools")
	cmd.Flags().IntVar(&historyLimit, "limit", picker.MaxHistory, "number of picks to show")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", config.ErrInvalid)
	}
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	ctx, err := withLogger(cmd.Context(), os.Stderr, opts.cfg.LogLevel)
	if err != nil {
		return err
	}
	a, err := openApp(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	session := picker.NewSession(a.roster, opts.settings(), nil)
	a.persist.Load(ctx).Apply(session)

	out := cmd.OutOrStdout()
	if historyClear {
		session.ClearHistory()
		a.persist.SaveHistory(ctx, session.History.Entries())
		a.persist.SaveUsed(ctx, session.Tracker.Snapshot())
		_, err := fmt.Fprintln(out, "History cleared.")
		return err
	}
	return stats.RenderHistory(out, session.History.Recent(historyLimit), stats.ShouldUseColor(out))
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show all-time pick statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	ctx, err := withLogger(cmd.Context(), os.Stderr, opts.cfg.LogLevel)
	if err != nil {
		return err
	}
	a, err := openApp(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	source, err := a.pickSource()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if statsPlain || !stats.IsTerminal(out) {
		report, err := stats.BuildReport(ctx, source)
		if err != nil {
			return err
		}
		return stats.RenderPickReport(out, report, a.roster, stats.TerminalWidth(), stats.ShouldUseColor(out))
	}

	program := tea.NewProgram(statsui.NewModel(ctx, source, a.roster), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats UI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open the config file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}
