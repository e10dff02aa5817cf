package adbbridge

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	sizePattern     = regexp.MustCompile(`(\d+)x(\d+)`)
	rotationPattern = regexp.MustCompile(`mDisplayRotation=ROTATION_(\d+)`)
)

// parseWMSize extracts the resolution from "wm size" output, e.g.
// "Physical size: 1080x2340". When an override size line is present it comes
// last and wins, matching what the window manager actually uses.
func parseWMSize(output string) (int, int, error) {
	matches := sizePattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("no resolution in wm size output %q", output)
	}
	match := matches[len(matches)-1]
	width, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	return width, height, nil
}

// parseRotation extracts the display rotation in quarter turns from
// "dumpsys window displays" output (mDisplayRotation=ROTATION_90 -> 1).
func parseRotation(output string) (int, bool) {
	match := rotationPattern.FindStringSubmatch(output)
	if match == nil {
		return 0, false
	}
	degrees, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return degrees / 90, true
}
