// Package state persists settings, history and the no-repeat used pool as
// JSON values in a key-value store. Reads and writes are best effort: every
// failure is logged and the caller carries on with defaults.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
)

// Keys of the persisted records.
const (
	KeySettings = "settings"
	KeyHistory  = "history"
	KeyUsed     = "used"
)

var (
	// ErrRead wraps failures to load or decode a record.
	ErrRead = errors.New("persisted state read failed")
	// ErrWrite wraps failures to encode or store a record.
	ErrWrite = errors.New("persisted state write failed")
)

// KeyValueStore is the storage capability used for persistence.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Snapshot is everything restored at startup.
type Snapshot struct {
	Settings model.Settings
	History  []model.HistoryEntry
	Used     map[string][]string
}

// Persister reads and writes the picker records.
type Persister struct {
	kv KeyValueStore
}

// NewPersister returns a Persister over kv. A nil kv disables persistence.
func NewPersister(kv KeyValueStore) *Persister {
	return &Persister{kv: kv}
}

// Load restores every record. Missing or malformed records fall back to
// defaults.
func (p *Persister) Load(ctx context.Context) Snapshot {
	snap := Snapshot{Settings: model.DefaultSettings(), Used: map[string][]string{}}
	log := pslog.Ctx(ctx)

	var settings model.Settings
	if ok, err := p.read(ctx, KeySettings, &settings); err != nil {
		log.Warn("settings load failed, using defaults", "err", err)
	} else if ok {
		if !settings.Speed.Valid() {
			log.Warn("stored speed unknown, using default", "speed", string(settings.Speed))
			settings.Speed = model.SpeedNormal
		}
		snap.Settings = settings
	}

	var history []model.HistoryEntry
	if ok, err := p.read(ctx, KeyHistory, &history); err != nil {
		log.Warn("history load failed, starting empty", "err", err)
	} else if ok {
		snap.History = sanitizeHistory(history)
	}

	var used map[string][]string
	if ok, err := p.read(ctx, KeyUsed, &used); err != nil {
		log.Warn("used pool load failed, starting empty", "err", err)
	} else if ok && used != nil {
		snap.Used = used
	}

	log.Debug("state loaded", "history", len(snap.History), "scopes", len(snap.Used), "speed", string(snap.Settings.Speed), "no_repeat", snap.Settings.NoRepeat)
	return snap
}

// Apply copies a snapshot into a session.
func (s Snapshot) Apply(session *picker.Session) {
	session.Settings = s.Settings
	session.History.Restore(s.History)
	session.Tracker.Restore(s.Used)
}

// SaveSettings stores the settings record.
func (p *Persister) SaveSettings(ctx context.Context, settings model.Settings) {
	p.save(ctx, KeySettings, settings)
}

// SaveHistory stores the history record, capped at picker.MaxHistory.
func (p *Persister) SaveHistory(ctx context.Context, history []model.HistoryEntry) {
	if len(history) > picker.MaxHistory {
		history = history[:picker.MaxHistory]
	}
	if history == nil {
		history = []model.HistoryEntry{}
	}
	p.save(ctx, KeyHistory, history)
}

// SaveUsed stores the no-repeat used pool.
func (p *Persister) SaveUsed(ctx context.Context, used map[string][]string) {
	p.save(ctx, KeyUsed, used)
}

// SaveSession stores every record of the session.
func (p *Persister) SaveSession(ctx context.Context, session *picker.Session) {
	p.SaveSettings(ctx, session.Settings)
	p.SaveHistory(ctx, session.History.Entries())
	p.SaveUsed(ctx, session.Tracker.Snapshot())
}

func (p *Persister) read(ctx context.Context, key string, out any) (bool, error) {
	if p.kv == nil {
		return false, nil
	}
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrRead, key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrRead, key, err)
	}
	return true, nil
}

func (p *Persister) save(ctx context.Context, key string, value any) {
	if err := p.write(ctx, key, value); err != nil {
		pslog.Ctx(ctx).Warn("state save failed", "key", key, "err", err)
	}
}

func (p *Persister) write(ctx context.Context, key string, value any) error {
	if p.kv == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	if err := p.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	return nil
}

func sanitizeHistory(history []model.HistoryEntry) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Name == "" || !h.Category.Valid() {
			continue
		}
		out = append(out, h)
		if len(out) == picker.MaxHistory {
			break
		}
	}
	return out
}
