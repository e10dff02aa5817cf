package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityClassifier uses a 1024-unit device on a 1024x1024 natural-orientation
// screen, so raw coordinates pass through the transform unchanged.
func identityClassifier(t *testing.T, thresholdPx float64) *Classifier {
	t.Helper()
	c, err := NewClassifier(
		ClassifierConfig{TapThresholdPx: thresholdPx},
		DeviceDescriptor{Path: "/dev/input/event2", MaxX: 1024, MaxY: 1024},
		ScreenGeometry{Width: 1024, Height: 1024, Orientation: OrientationPortrait},
		nil,
	)
	require.NoError(t, err)
	return c
}

func completedSession(startX, startY, endX, endY int32, start, end time.Time) *Session {
	return &Session{
		StartTime: start, EndTime: end,
		StartX: startX, StartY: startY, HasStartX: true, HasStartY: true,
		EndX: endX, EndY: endY, HasEndX: true, HasEndY: true,
	}
}

func TestNewClassifierValidation(t *testing.T) {
	t.Parallel()

	dev := DeviceDescriptor{MaxX: 1024, MaxY: 1024}
	geo := ScreenGeometry{Width: 1080, Height: 1920}

	_, err := NewClassifier(ClassifierConfig{TapThresholdPx: 0}, dev, geo, nil)
	assert.Error(t, err)

	_, err = NewClassifier(ClassifierConfig{TapThresholdPx: 20}, DeviceDescriptor{MaxX: 0, MaxY: 1024}, geo, nil)
	assert.ErrorIs(t, err, ErrZeroAxis)

	_, err = NewClassifier(ClassifierConfig{TapThresholdPx: 20}, dev, ScreenGeometry{Width: 0, Height: 1920}, nil)
	assert.Error(t, err)
}

func TestClassifyDropsIncompleteSessions(t *testing.T) {
	t.Parallel()

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	_, ok := c.Classify(nil)
	assert.False(t, ok)

	// Down-then-up with no coordinate samples at all.
	_, ok = c.Classify(&Session{StartTime: base, EndTime: base.Add(5 * time.Millisecond)})
	assert.False(t, ok)

	// Missing just one coordinate is still incomplete.
	partial := completedSession(100, 100, 200, 200, base, base.Add(time.Second))
	partial.HasEndY = false
	_, ok = c.Classify(partial)
	assert.False(t, ok)
}

func TestClassifyTapUsesReleaseCoordinate(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	// 15px of drift, under threshold: a tap at the release point.
	cmd, ok := c.Classify(completedSession(100, 100, 115, 100, base, base.Add(80*time.Millisecond)))
	require.True(ok)
	require.Equal(KindTap, cmd.Kind)
	require.Equal(115, cmd.X)
	require.Equal(100, cmd.Y)
	require.Equal(base.Add(80*time.Millisecond), cmd.CapturedAt)
}

func TestClassifyZeroDistanceIsTap(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	cmd, ok := c.Classify(completedSession(512, 512, 512, 512, base, base.Add(50*time.Millisecond)))
	require.True(ok)
	require.Equal(KindTap, cmd.Kind)
}

// Distance exactly at the threshold is a swipe: the tap predicate is
// strictly-less-than.
func TestClassifyThresholdBoundary(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	cmd, ok := c.Classify(completedSession(100, 100, 120, 100, base, base.Add(200*time.Millisecond)))
	require.True(ok)
	require.Equal(KindSwipe, cmd.Kind)
	require.Equal(100, cmd.X)
	require.Equal(100, cmd.Y)
	require.Equal(120, cmd.X2)
	require.Equal(100, cmd.Y2)
	require.Equal(int64(200), cmd.DurationMS)
}

func TestClassifySwipeDuration(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	cmd, ok := c.Classify(completedSession(100, 100, 500, 500, base, base.Add(300*time.Millisecond)))
	require.True(ok)
	require.Equal(KindSwipe, cmd.Kind)
	require.Equal(int64(300), cmd.DurationMS)
}

func TestClassifyNegativeDurationClamped(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c := identityClassifier(t, 20)
	base := time.Unix(1000, 0)

	// Out-of-order timestamps from a glitchy stream must not produce a
	// negative duration.
	cmd, ok := c.Classify(completedSession(100, 100, 500, 500, base, base.Add(-time.Second)))
	require.True(ok)
	require.Equal(int64(0), cmd.DurationMS)
}

// A stationary touch on a rotated portrait panel: the transform applies
// before classification, so the tap lands in display space.
func TestClassifyTapOnRotatedPanel(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	c, err := NewClassifier(
		ClassifierConfig{TapThresholdPx: 20},
		DeviceDescriptor{Path: "/dev/input/event2", MaxX: 4095, MaxY: 4095},
		ScreenGeometry{Width: 1080, Height: 1920, Orientation: OrientationLandscape},
		nil,
	)
	require.NoError(err)

	base := time.Unix(1000, 0)
	cmd, ok := c.Classify(completedSession(2048, 2048, 2048, 2048, base, base.Add(60*time.Millisecond)))
	require.True(ok)
	require.Equal(KindTap, cmd.Kind)
	require.Equal(960, cmd.X)
	require.Equal(539, cmd.Y)
}
