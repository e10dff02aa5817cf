package gesture

import "time"

// Linux input event types and the codes the touch pipeline cares about.
const (
	EventTypeSyn uint16 = 0x00
	EventTypeKey uint16 = 0x01
	EventTypeAbs uint16 = 0x03

	CodeSynReport       uint16 = 0x00
	CodeBtnTouch        uint16 = 0x14a
	CodeAbsMTSlot       uint16 = 0x2f
	CodeAbsMTPositionX  uint16 = 0x35
	CodeAbsMTPositionY  uint16 = 0x36
	CodeAbsMTTrackingID uint16 = 0x39
)

// RawEvent is one decoded input event. The timestamp is assigned by whoever
// produced the event (decoder clock or kernel event time); raw getevent
// output carries no portably reconstructable timestamps.
type RawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
	Time  time.Time
}

// DeviceDescriptor identifies a touch-capable input device and the declared
// maxima of its multitouch position axes.
type DeviceDescriptor struct {
	Path string `json:"path"`
	MaxX int32  `json:"max_x"`
	MaxY int32  `json:"max_y"`
}

// Orientation values are display rotation in quarter turns.
const (
	OrientationPortrait          = 0
	OrientationLandscape         = 1
	OrientationPortraitInverted  = 2
	OrientationLandscapeInverted = 3

	// DefaultOrientation is the documented fallback when the display
	// rotation cannot be determined.
	DefaultOrientation = OrientationLandscape
)

// ScreenGeometry describes the display the actuation interface addresses.
type ScreenGeometry struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	Orientation int `json:"orientation"`
}

type CommandKind string

const (
	KindTap   CommandKind = "tap"
	KindSwipe CommandKind = "swipe"
)

// Command is one replayable gesture. For taps only X/Y are meaningful; for
// swipes X/Y is the start point and X2/Y2 the end point. IntervalBeforeMS is
// the raw captured gap to the previous command's end; it is preserved as
// recorded, clamping is replay-time policy only.
type Command struct {
	Kind             CommandKind `json:"kind"`
	X                int         `json:"x"`
	Y                int         `json:"y"`
	X2               int         `json:"x2,omitempty"`
	Y2               int         `json:"y2,omitempty"`
	DurationMS       int64       `json:"duration_ms,omitempty"`
	IntervalBeforeMS *int64      `json:"interval_before_ms,omitempty"`
	CapturedAt       time.Time   `json:"captured_at"`
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards everything. Useful default for callers that do not
// care about pipeline diagnostics.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
