package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/config"
	"github.com/verte-zerg/heropick/internal/engine"
	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
	"github.com/verte-zerg/heropick/internal/state"
	"github.com/verte-zerg/heropick/internal/stats"
	"github.com/verte-zerg/heropick/internal/store"
)

// app holds what every subcommand shares: the roster and the optional store.
type app struct {
	roster  *roster.Roster
	store   *store.Store
	persist *state.Persister
}

func openApp(ctx context.Context, cfg model.Config) (*app, error) {
	r, err := loadRoster(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	a := &app{roster: r}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		// The picker works without persistence.
		pslog.Ctx(ctx).Warn("store unavailable, persistence disabled", "path", cfg.DBPath, "err", err)
		a.persist = state.NewPersister(nil)
		return a, nil
	}
	a.store = st
	a.persist = state.NewPersister(st)
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		pslog.Ctx(ctx).Warn("store close failed", "err", err)
	}
}

// pickLog returns the pick log, or a nil interface when the store is closed.
func (a *app) pickLog() engine.PickLog {
	if a.store == nil {
		return nil
	}
	return a.store
}

func (a *app) pickSource() (stats.PickSource, error) {
	if a.store == nil {
		return nil, errors.New("pick statistics need a working database")
	}
	return a.store, nil
}

// newSession restores persisted state, then applies explicitly chosen
// settings on top of it.
func (a *app) newSession(ctx context.Context, opts options) (*picker.Session, error) {
	filter, err := picker.ParseFilter(opts.cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	session := picker.NewSession(a.roster, opts.settings(), nil)
	snap := a.persist.Load(ctx)
	snap.Apply(session)
	if opts.speedSet {
		session.Settings.Speed = opts.cfg.Speed
	}
	if opts.noRepeatSet {
		session.Settings.NoRepeat = opts.cfg.NoRepeat
	}
	session.Filter = filter
	return session, nil
}

func loadRoster(path string) (*roster.Roster, error) {
	if path != "" {
		r, err := roster.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
		return r, nil
	}
	path = config.DefaultRosterPath()
	if _, err := os.Stat(path); err == nil {
		r, err := roster.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
		return r, nil
	}
	return roster.Default(), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
