package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/verte-zerg/heropick/internal/config"
	"github.com/verte-zerg/heropick/internal/logging"
	"github.com/verte-zerg/heropick/internal/model"
)

// options is the resolved configuration plus which settings were chosen
// explicitly, so they can win over the persisted ones.
type options struct {
	cfg         model.Config
	speedSet    bool
	noRepeatSet bool
}

func resolveOptions(cmd *cobra.Command) (options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return options{}, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveWith(cmd, fileCfg)
}

func resolveWith(cmd *cobra.Command, fileCfg config.FileConfig) (options, error) {
	applyStringConfig(cmd, "speed", &pickSpeed, fileCfg.Picker.Speed)
	applyBoolConfig(cmd, "no-repeat", &pickNoRepeat, fileCfg.Picker.NoRepeat)
	applyStringConfig(cmd, "filter", &pickFilter, fileCfg.Picker.Filter)
	applyStringConfig(cmd, "roster", &rosterPath, fileCfg.Picker.Roster)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Picker.DB)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Picker.LogLevel)

	speed, err := model.ParseSpeed(pickSpeed)
	if err != nil {
		return options{}, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	opts := options{
		cfg: model.Config{
			Speed:      speed,
			NoRepeat:   pickNoRepeat,
			Filter:     pickFilter,
			RosterPath: expandHome(rosterPath),
			DBPath:     expandHome(dbPath),
			LogLevel:   logLevel,
		},
		speedSet:    flagChanged(cmd, "speed") || fileCfg.Picker.Speed != nil,
		noRepeatSet: flagChanged(cmd, "no-repeat") || fileCfg.Picker.NoRepeat != nil,
	}
	if err := config.Validate(opts.cfg); err != nil {
		return options{}, err
	}
	return opts, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func withLogger(ctx context.Context, w io.Writer, level string) (context.Context, error) {
	logger, err := logging.New(w, level)
	if err != nil {
		return ctx, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	return pslog.ContextWithLogger(ctx, logger), nil
}

func (o options) settings() model.Settings {
	return model.Settings{Speed: o.cfg.Speed, NoRepeat: o.cfg.NoRepeat}
}
