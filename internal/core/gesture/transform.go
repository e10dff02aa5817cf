package gesture

import (
	"errors"
	"fmt"
)

// ErrZeroAxis reports a device descriptor with a zero coordinate axis
// maximum. Treated as a fatal configuration error: normalizing against it
// would divide by zero and every derived coordinate would be garbage.
var ErrZeroAxis = errors.New("touch axis maximum is zero")

// ToScreen maps a raw sensor coordinate onto the screen described by geo.
// Raw coordinates are normalized against the device axis maxima and then
// rotated per the display orientation (quarter turns); unknown orientation
// values use the natural (0) mapping. Results truncate toward zero.
func ToScreen(rawX, rawY int32, dev DeviceDescriptor, geo ScreenGeometry) (int, int, error) {
	if dev.MaxX <= 0 || dev.MaxY <= 0 {
		return 0, 0, fmt.Errorf("device %s: %w", dev.Path, ErrZeroAxis)
	}

	xNorm := float64(rawX) / float64(dev.MaxX)
	yNorm := float64(rawY) / float64(dev.MaxY)
	width := float64(geo.Width)
	height := float64(geo.Height)

	switch geo.Orientation {
	case OrientationLandscape:
		return int(yNorm * height), int((1 - xNorm) * width), nil
	case OrientationPortraitInverted:
		return int((1 - xNorm) * width), int((1 - yNorm) * height), nil
	case OrientationLandscapeInverted:
		return int((1 - yNorm) * height), int(xNorm * width), nil
	default:
		return int(xNorm * width), int(yNorm * height), nil
	}
}
