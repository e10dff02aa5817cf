//go:build linux

package main

import (
	"touchrec/internal/adapters/evdevinput"
	"touchrec/internal/core/gesture"
)

type deviceListing struct {
	Path  string
	Name  string
	Touch bool
	MaxX  int32
	MaxY  int32
}

func evdevFindTouchDevice(devicePath string) (gesture.DeviceDescriptor, error) {
	return evdevinput.FindTouchDevice(devicePath)
}

func evdevOpenSource(devicePath string) (gesture.EventSource, error) {
	return evdevinput.Open(devicePath)
}

func evdevListDevices() ([]deviceListing, error) {
	devices, err := evdevinput.ListDevices()
	if err != nil {
		return nil, err
	}
	listings := make([]deviceListing, 0, len(devices))
	for _, dev := range devices {
		listings = append(listings, deviceListing{
			Path:  dev.Path,
			Name:  dev.Name,
			Touch: dev.Touch,
			MaxX:  dev.MaxX,
			MaxY:  dev.MaxY,
		})
	}
	return listings, nil
}
