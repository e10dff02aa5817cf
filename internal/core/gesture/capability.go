package gesture

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoTouchDevice is returned when a capability dump contains no device
// declaring both multitouch position axes.
var ErrNoTouchDevice = errors.New("no touch-capable input device found")

var (
	devicePathPattern = regexp.MustCompile(`(/dev/input/event\d+)`)
	absMTXMaxPattern  = regexp.MustCompile(`ABS_MT_POSITION_X.*?max\s+(\d+)`)
	absMTYMaxPattern  = regexp.MustCompile(`ABS_MT_POSITION_Y.*?max\s+(\d+)`)
)

// DeviceSummary describes one device block of a capability dump.
type DeviceSummary struct {
	Path  string
	Touch bool
	MaxX  int32
	MaxY  int32
}

// ListDevices splits a "getevent -p -l" style capability dump into device
// blocks and summarizes each. Pure function over its input; safe to call
// repeatedly on the same dump.
func ListDevices(dump string) []DeviceSummary {
	var summaries []DeviceSummary
	for _, block := range splitDeviceBlocks(dump) {
		path := devicePathPattern.FindString(block)
		if path == "" {
			continue
		}
		summary := DeviceSummary{Path: path}
		if maxX, ok := axisMax(absMTXMaxPattern, block); ok {
			if maxY, ok := axisMax(absMTYMaxPattern, block); ok {
				summary.Touch = true
				summary.MaxX = maxX
				summary.MaxY = maxY
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// FindTouchDevice returns the first device in dump order that declares
// maxima for both ABS_MT_POSITION axes. No scoring or ranking; firmware
// listing order wins, matching how the capture tooling has always behaved.
func FindTouchDevice(dump string) (DeviceDescriptor, error) {
	for _, summary := range ListDevices(dump) {
		if !summary.Touch {
			continue
		}
		return DeviceDescriptor{Path: summary.Path, MaxX: summary.MaxX, MaxY: summary.MaxY}, nil
	}
	return DeviceDescriptor{}, ErrNoTouchDevice
}

// splitDeviceBlocks groups dump lines into per-device blocks. A block starts
// at an "add device" line naming an event node; leading chatter before the
// first such line is dropped.
func splitDeviceBlocks(dump string) []string {
	var blocks []string
	var current []string

	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "add device") && strings.Contains(line, "/dev/input/event") {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func axisMax(pattern *regexp.Regexp, block string) (int32, bool) {
	match := pattern.FindStringSubmatch(block)
	if match == nil {
		return 0, false
	}
	max, err := strconv.ParseInt(match[1], 10, 32)
	if err != nil || max < 0 {
		return 0, false
	}
	return int32(max), true
}
