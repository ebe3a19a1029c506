package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/heropick/internal/engine"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/stats"
	"github.com/verte-zerg/heropick/internal/suspense"
)

var (
	pickSearch  string
	pickInstant bool
)

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a hero in the terminal without the full-screen UI",
		Args:  cobra.NoArgs,
		RunE:  runPickCmd,
	}
	addPickFlags(cmd)
	cmd.Flags().StringVar(&pickSearch, "search", "", "only pick heroes whose name contains this text")
	cmd.Flags().BoolVar(&pickInstant, "instant", false, "skip the suspense animation")
	return cmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
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

	session, err := a.newSession(ctx, opts)
	if err != nil {
		return err
	}
	session.Query = pickSearch

	out := cmd.OutOrStdout()
	useColor := stats.ShouldUseColor(out)
	lines := newLineRenderer(out, stats.IsTerminal(out), useColor)

	loop := suspense.NewLoop()
	eng := engine.New(session, loop, lines, a.persist, a.pickLog())

	if pickInstant {
		entry, err := eng.DrawNow(ctx)
		if err != nil {
			return pickError(err)
		}
		return lines.final(entry)
	}

	started, err := eng.Trigger(ctx)
	if err != nil {
		return pickError(err)
	}
	if !started {
		return errors.New("draw did not start")
	}
	if err := loop.Run(ctx); err != nil {
		return err
	}
	return lines.err
}

func pickError(err error) error {
	if errors.Is(err, picker.ErrEmptyPool) {
		return fmt.Errorf("%w: adjust --filter or --search", err)
	}
	return err
}

// lineRenderer prints animation frames to a plain writer. On a terminal the
// frame is redrawn in place; otherwise every frame gets its own line.
type lineRenderer struct {
	w        io.Writer
	inPlace  bool
	useColor bool
	dirty    bool
	err      error
}

func newLineRenderer(w io.Writer, inPlace, useColor bool) *lineRenderer {
	return &lineRenderer{w: w, inPlace: inPlace, useColor: useColor}
}

func (l *lineRenderer) RenderFrame(frame suspense.Frame) {
	if l.err != nil {
		return
	}
	switch {
	case frame.Phase == suspense.PhaseRevealing:
		l.err = l.final(frame.Entry)
	case frame.Phase == suspense.PhaseIdle:
	default:
		l.err = l.write(frame.Name())
	}
}

func (l *lineRenderer) write(text string) error {
	if l.inPlace {
		l.dirty = true
		_, err := fmt.Fprintf(l.w, "\r\x1b[2K  %s", text)
		return err
	}
	_, err := fmt.Fprintf(l.w, "  %s\n", text)
	return err
}

func (l *lineRenderer) final(entry roster.Entry) error {
	if l.inPlace && l.dirty {
		if _, err := fmt.Fprint(l.w, "\r\x1b[2K"); err != nil {
			return err
		}
		l.dirty = false
	}
	name := stats.Colorize(entry.Category, entry.Name, l.useColor)
	_, err := fmt.Fprintf(l.w, "» %s (%s)\n", name, entry.Category.Label())
	return err
}
