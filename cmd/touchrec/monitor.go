package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"touchrec/internal/core/gesture"
)

// runShowEvents streams raw events and prints the sensor-to-screen mapping
// on every sync report. Debugging aid for checking axis maxima and rotation
// before recording.
func runShowEvents(ctx context.Context, cfg config, logger *slog.Logger) error {
	desc, geo, source, err := openCapture(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	fmt.Printf("monitoring %s | sensor %dx%d | screen %dx%d orientation %d\n",
		desc.Path, desc.MaxX, desc.MaxY, geo.Width, geo.Height, geo.Orientation)

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = source.Close()
		case <-watchDone:
		}
	}()

	var curX, curY int32
	var hasX, hasY bool
	for {
		ev, err := source.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		switch {
		case ev.Type == gesture.EventTypeAbs && ev.Code == gesture.CodeAbsMTPositionX:
			curX = ev.Value
			hasX = true
		case ev.Type == gesture.EventTypeAbs && ev.Code == gesture.CodeAbsMTPositionY:
			curY = ev.Value
			hasY = true
		case ev.Type == gesture.EventTypeSyn && ev.Code == gesture.CodeSynReport && hasX && hasY:
			screenX, screenY, err := gesture.ToScreen(curX, curY, desc, geo)
			if err != nil {
				return err
			}
			fmt.Printf("raw (%5d, %5d) -> screen (%4d, %4d)\n", curX, curY, screenX, screenY)
		}
	}
}
