package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"touchrec/internal/adapters/adbbridge"
	"touchrec/internal/adapters/scriptfile"
	"touchrec/internal/core/gesture"
)

func newBridge(cfg config, logger gesture.Logger) *adbbridge.Bridge {
	return adbbridge.New(adbbridge.Config{
		ADBPath:        cfg.adbPath,
		Serial:         cfg.serial,
		CommandTimeout: cfg.commandTimeout,
	}, logger)
}

// selectTouchDevice resolves the device descriptor from a capability dump,
// honoring an explicit --device path when given.
func selectTouchDevice(dump, explicitPath string) (gesture.DeviceDescriptor, error) {
	if explicitPath == "" {
		return gesture.FindTouchDevice(dump)
	}
	for _, summary := range gesture.ListDevices(dump) {
		if summary.Path != explicitPath {
			continue
		}
		if !summary.Touch {
			return gesture.DeviceDescriptor{}, fmt.Errorf("%s does not declare multitouch position axes", explicitPath)
		}
		return gesture.DeviceDescriptor{Path: summary.Path, MaxX: summary.MaxX, MaxY: summary.MaxY}, nil
	}
	return gesture.DeviceDescriptor{}, fmt.Errorf("device %s not present in capability dump", explicitPath)
}

// openCapture sets up the capture inputs for the configured backend: the
// touch device descriptor, the screen geometry, and a raw event source.
func openCapture(ctx context.Context, cfg config, logger *slog.Logger) (gesture.DeviceDescriptor, gesture.ScreenGeometry, gesture.EventSource, error) {
	if cfg.backend == "evdev" {
		desc, err := evdevFindTouchDevice(cfg.devicePath)
		if err != nil {
			return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
		}
		geo, err := cfg.evdevGeometry()
		if err != nil {
			return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
		}
		source, err := evdevOpenSource(desc.Path)
		if err != nil {
			return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
		}
		return desc, geo, source, nil
	}

	bridge := newBridge(cfg, logger)
	if err := bridge.CheckConnection(ctx); err != nil {
		return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
	}
	dump, err := bridge.CapabilityDump(ctx)
	if err != nil {
		return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
	}
	desc, err := selectTouchDevice(dump, cfg.devicePath)
	if err != nil {
		return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
	}
	geo, err := bridge.ScreenGeometry(ctx)
	if err != nil {
		return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
	}
	stream, err := bridge.OpenEventStream(ctx, desc.Path)
	if err != nil {
		return gesture.DeviceDescriptor{}, gesture.ScreenGeometry{}, nil, err
	}
	return desc, geo, gesture.NewLineEventSource(stream), nil
}

func runRecord(ctx context.Context, cfg config, logger *slog.Logger) error {
	desc, geo, source, err := openCapture(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	recorder, err := gesture.NewRecorder(
		gesture.ClassifierConfig{TapThresholdPx: cfg.tapThresholdPx},
		desc, geo, logger,
	)
	if err != nil {
		return err
	}

	logger.Info("recording touch gestures",
		"device", desc.Path,
		"sensor", fmt.Sprintf("%dx%d", desc.MaxX, desc.MaxY),
		"screen", fmt.Sprintf("%dx%d", geo.Width, geo.Height),
		"orientation", geo.Orientation)

	runErr := recorder.Run(ctx, source)
	// Interruption still yields everything classified so far.
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	commands := recorder.Commands()
	if recorder.DiscardedSessions() > 0 {
		logger.Warn("discarded unfinished touch sessions", "count", recorder.DiscardedSessions())
	}
	if len(commands) == 0 {
		logger.Info("no gestures captured")
		return nil
	}

	if err := scriptfile.Save(cfg.outPath, commands); err != nil {
		return err
	}
	logger.Info("gesture script saved", "path", cfg.outPath, "commands", len(commands))
	return nil
}
