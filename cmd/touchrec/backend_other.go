//go:build !linux

package main

import (
	"fmt"

	"touchrec/internal/core/gesture"
)

type deviceListing struct {
	Path  string
	Name  string
	Touch bool
	MaxX  int32
	MaxY  int32
}

func evdevFindTouchDevice(string) (gesture.DeviceDescriptor, error) {
	return gesture.DeviceDescriptor{}, fmt.Errorf("--backend evdev is only available on linux")
}

func evdevOpenSource(string) (gesture.EventSource, error) {
	return nil, fmt.Errorf("--backend evdev is only available on linux")
}

func evdevListDevices() ([]deviceListing, error) {
	return nil, fmt.Errorf("--backend evdev is only available on linux")
}
