// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/heropick/internal/roster"
)

// Speed selects an animation timing profile.
type Speed string

const (
	SpeedFast   Speed = "fast"
	SpeedNormal Speed = "normal"
	SpeedSlow   Speed = "slow"
)

// Speeds lists speeds in cycling order.
var Speeds = []Speed{SpeedFast, SpeedNormal, SpeedSlow}

// ParseSpeed parses a speed name.
func ParseSpeed(s string) (Speed, error) {
	sp := Speed(strings.ToLower(strings.TrimSpace(s)))
	if !sp.Valid() {
		return "", fmt.Errorf("unknown speed %q (want fast, normal or slow)", s)
	}
	return sp, nil
}

// Valid reports whether s is a known speed.
func (s Speed) Valid() bool {
	switch s {
	case SpeedFast, SpeedNormal, SpeedSlow:
		return true
	}
	return false
}

// Next returns the speed after s, wrapping around.
func (s Speed) Next() Speed {
	for i, sp := range Speeds {
		if sp == s {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return SpeedNormal
}

// Config defines resolved CLI settings.
type Config struct {
	Speed      Speed
	NoRepeat   bool
	Filter     string
	RosterPath string
	DBPath     string
	LogLevel   string
}

// Settings are the user preferences persisted between runs.
type Settings struct {
	NoRepeat bool  `json:"noRepeat"`
	Speed    Speed `json:"speed"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{Speed: SpeedNormal}
}

// HistoryEntry records a committed pick.
type HistoryEntry struct {
	Name      string          `json:"name"`
	Category  roster.Category `json:"category"`
	Timestamp time.Time       `json:"timestamp"`
}

// PickRecord is one row of the all-time pick log.
type PickRecord struct {
	Name     string
	Category roster.Category
	PickedAt time.Time
	Filter   string
	Speed    Speed
	NoRepeat bool
}

// PickCount aggregates picks of one hero.
type PickCount struct {
	Name       string
	Category   roster.Category
	Count      int
	LastPicked time.Time
}
