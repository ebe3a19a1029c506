package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
	"github.com/verte-zerg/heropick/internal/roster"
)

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(c.buf.Bytes(), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &entry), "parse log entry %q", line)
		out = append(out, entry)
	}
	return out
}

func message(entry map[string]any) string {
	if v, ok := entry["message"].(string); ok {
		return v
	}
	if v, ok := entry["msg"].(string); ok {
		return v
	}
	return ""
}

func captureContext() (context.Context, *logCapture) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	return pslog.ContextWithLogger(context.Background(), logger), capture
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	p := NewPersister(NewMemoryStore())
	snap := p.Load(context.Background())
	assert.Equal(t, model.DefaultSettings(), snap.Settings)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Used)
}

func TestRoundTripSession(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	p := NewPersister(kv)

	s := picker.NewSession(roster.Default(), model.Settings{NoRepeat: true, Speed: model.SpeedSlow}, nil)
	s.SetClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) })
	_, err := s.Draw()
	require.NoError(t, err)
	p.SaveSession(ctx, s)

	restored := picker.NewSession(roster.Default(), model.DefaultSettings(), nil)
	p.Load(ctx).Apply(restored)

	assert.Equal(t, s.Settings, restored.Settings)
	assert.Equal(t, s.History.Entries(), restored.History.Entries())
	assert.Equal(t, s.Tracker.Snapshot(), restored.Tracker.Snapshot())
}

func TestLoadIgnoresMalformedRecords(t *testing.T) {
	ctx, capture := captureContext()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeySettings, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyHistory, `[{"name":"Groot","category":"tank","timestamp":"2025-01-01T00:00:00Z"},{"name":"","category":"tank"},{"name":"Ghost","category":"support"}]`))
	require.NoError(t, kv.Set(ctx, KeyUsed, `"oops"`))

	snap := NewPersister(kv).Load(ctx)
	assert.Equal(t, model.DefaultSettings(), snap.Settings)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "Groot", snap.History[0].Name)
	assert.Empty(t, snap.Used)

	entries := capture.entries(t)
	require.Len(t, entries, 2)
	assert.Contains(t, message(entries[0]), "settings load failed")
	assert.Contains(t, message(entries[1]), "used pool load failed")
}

func TestLoadReplacesUnknownSpeed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeySettings, `{"noRepeat":true,"speed":"warp"}`))
	snap := NewPersister(kv).Load(ctx)
	assert.True(t, snap.Settings.NoRepeat)
	assert.Equal(t, model.SpeedNormal, snap.Settings.Speed)
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	ctx, capture := captureContext()
	p := NewPersister(failingStore{err: errors.New("disk full")})

	snap := p.Load(ctx)
	assert.Equal(t, model.DefaultSettings(), snap.Settings)

	p.SaveSettings(ctx, model.Settings{Speed: model.SpeedFast})
	entries := capture.entries(t)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "state save failed", message(last))
	assert.Equal(t, KeySettings, last["key"])
	assert.True(t, strings.Contains(fmt.Sprint(last["err"]), "disk full"))
}

func TestReadWrapsErrRead(t *testing.T) {
	p := NewPersister(failingStore{err: errors.New("boom")})
	var settings model.Settings
	_, err := p.read(context.Background(), KeySettings, &settings)
	assert.ErrorIs(t, err, ErrRead)

	err = p.write(context.Background(), KeySettings, settings)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestSaveHistoryCaps(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	p := NewPersister(kv)
	history := make([]model.HistoryEntry, 30)
	for i := range history {
		history[i] = model.HistoryEntry{Name: "Groot", Category: roster.Tank}
	}
	p.SaveHistory(ctx, history)

	raw, ok, err := kv.Get(ctx, KeyHistory)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []model.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, picker.MaxHistory)
}

func TestNilStoreDisablesPersistence(t *testing.T) {
	p := NewPersister(nil)
	p.SaveSettings(context.Background(), model.DefaultSettings())
	assert.Equal(t, model.DefaultSettings(), p.Load(context.Background()).Settings)
}
