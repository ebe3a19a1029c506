package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/heropick/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Picker.Speed)
	assert.Nil(t, cfg.Picker.NoRepeat)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[picker]\nspeed = \"slow\"\nno-repeat = true\nfilter = \"healer\"\nlog-level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Picker.Speed)
	assert.Equal(t, "slow", *cfg.Picker.Speed)
	require.NotNil(t, cfg.Picker.NoRepeat)
	assert.True(t, *cfg.Picker.NoRepeat)
	require.NotNil(t, cfg.Picker.Filter)
	assert.Equal(t, "healer", *cfg.Picker.Filter)
	assert.Nil(t, cfg.Picker.DB)
}

func TestLoadConfigDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[picker\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "decode")
}

func TestDefaultTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	_, err := toml.Decode(DefaultTemplate, &cfg)
	require.NoError(t, err)
	assert.Nil(t, cfg.Picker.Speed)
}

func TestValidate(t *testing.T) {
	good := model.Config{Speed: model.SpeedFast, Filter: "tank", LogLevel: "info", DBPath: "x.db"}
	require.NoError(t, Validate(good))

	cases := map[string]func(*model.Config){
		"speed":  func(c *model.Config) { c.Speed = "warp" },
		"filter": func(c *model.Config) { c.Filter = "support" },
		"level":  func(c *model.Config) { c.LogLevel = "loud" },
		"db":     func(c *model.Config) { c.DBPath = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := good
			mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalid)
		})
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/cfg", "heropick", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "heropick", "roster.toml"), DefaultRosterPath())
	assert.Equal(t, filepath.Join("/data", "heropick", "heropick.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "heropick", "heropick.log"), DefaultLogPath())
}
