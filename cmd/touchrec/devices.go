package main

import (
	"context"
	"fmt"

	"touchrec/internal/core/gesture"
)

func runListDevices(ctx context.Context, cfg config) error {
	if cfg.backend == "evdev" {
		devices, err := evdevListDevices()
		if err != nil {
			return err
		}
		for _, dev := range devices {
			if dev.Touch {
				fmt.Printf("%s: %s [touch, %dx%d]\n", dev.Path, dev.Name, dev.MaxX, dev.MaxY)
			} else {
				fmt.Printf("%s: %s [no touch axes]\n", dev.Path, dev.Name)
			}
		}
		return nil
	}

	bridge := newBridge(cfg, gesture.NopLogger{})
	if err := bridge.CheckConnection(ctx); err != nil {
		return err
	}
	dump, err := bridge.CapabilityDump(ctx)
	if err != nil {
		return err
	}
	summaries := gesture.ListDevices(dump)
	if len(summaries) == 0 {
		return fmt.Errorf("capability dump lists no input devices")
	}
	for _, summary := range summaries {
		if summary.Touch {
			fmt.Printf("%s [touch, %dx%d]\n", summary.Path, summary.MaxX, summary.MaxY)
		} else {
			fmt.Printf("%s [no touch axes]\n", summary.Path)
		}
	}
	return nil
}
