package main

import (
	"context"
	"fmt"
	"log/slog"

	"touchrec/internal/adapters/scriptfile"
	"touchrec/internal/core/replay"
)

func runReplay(ctx context.Context, cfg config, logger *slog.Logger) error {
	commands, err := scriptfile.Load(cfg.replayPath)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		return fmt.Errorf("script %s contains no commands", cfg.replayPath)
	}

	bridge := newBridge(cfg, logger)
	if err := bridge.CheckConnection(ctx); err != nil {
		return err
	}

	schedulerCfg := replay.DefaultConfig()
	schedulerCfg.DefaultIntervalMS = cfg.defaultIntervalMS
	scheduler, err := replay.NewScheduler(schedulerCfg, bridge, logger)
	if err != nil {
		return err
	}

	logger.Info("replaying gesture script", "path", cfg.replayPath, "commands", len(commands))
	executed, err := scheduler.Run(ctx, commands)
	if err != nil {
		return fmt.Errorf("replay halted after %d/%d commands: %w", executed, len(commands), err)
	}
	logger.Info("replay finished", "executed", executed)
	return nil
}
