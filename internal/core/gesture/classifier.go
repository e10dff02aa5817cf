package gesture

import (
	"fmt"
	"math"
)

// DefaultTapThresholdPx is the screen-space distance below which a touch is
// a tap. Deployments have run anywhere from 5 to 20 depending on panel
// sensitivity; it is configuration, not a constant of the algorithm.
const DefaultTapThresholdPx = 20.0

type ClassifierConfig struct {
	TapThresholdPx float64
}

// Classifier turns completed touch sessions into tap/swipe commands.
// Geometry and device maxima are validated once at construction so the
// per-session path cannot hit a transform configuration error.
type Classifier struct {
	cfg ClassifierConfig
	dev DeviceDescriptor
	geo ScreenGeometry
	log Logger
}

func NewClassifier(cfg ClassifierConfig, dev DeviceDescriptor, geo ScreenGeometry, log Logger) (*Classifier, error) {
	if log == nil {
		log = NopLogger{}
	}
	if cfg.TapThresholdPx <= 0 {
		return nil, fmt.Errorf("tap threshold must be > 0, got %v", cfg.TapThresholdPx)
	}
	if dev.MaxX <= 0 || dev.MaxY <= 0 {
		return nil, fmt.Errorf("device %s: %w", dev.Path, ErrZeroAxis)
	}
	if geo.Width <= 0 || geo.Height <= 0 {
		return nil, fmt.Errorf("invalid screen geometry %dx%d", geo.Width, geo.Height)
	}
	return &Classifier{cfg: cfg, dev: dev, geo: geo, log: log}, nil
}

// Classify maps a session to a command. Sessions missing any coordinate or
// timestamp are dropped (second return false): a touch-down immediately
// followed by touch-up can legitimately carry no samples at all.
//
// A tap uses the last known coordinate, not the first. Coordinate updates
// keep arriving on touches that end up classified as taps, and the final
// position is where the finger actually was on release.
func (c *Classifier) Classify(s *Session) (Command, bool) {
	if s == nil || !s.Complete() {
		c.log.Debug("dropping incomplete touch session")
		return Command{}, false
	}

	startX, startY, err := ToScreen(s.StartX, s.StartY, c.dev, c.geo)
	if err != nil {
		c.log.Warn("transform failed", "err", err)
		return Command{}, false
	}
	endX, endY, err := ToScreen(s.EndX, s.EndY, c.dev, c.geo)
	if err != nil {
		c.log.Warn("transform failed", "err", err)
		return Command{}, false
	}

	distance := math.Hypot(float64(endX-startX), float64(endY-startY))
	durationMS := s.EndTime.Sub(s.StartTime).Milliseconds()
	if durationMS < 0 {
		durationMS = 0
	}

	if distance < c.cfg.TapThresholdPx {
		return Command{
			Kind:       KindTap,
			X:          endX,
			Y:          endY,
			CapturedAt: s.EndTime,
		}, true
	}
	return Command{
		Kind:       KindSwipe,
		X:          startX,
		Y:          startY,
		X2:         endX,
		Y2:         endY,
		DurationMS: durationMS,
		CapturedAt: s.EndTime,
	}, true
}
