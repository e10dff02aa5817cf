//go:build linux

// Package evdevinput captures touch events straight from local evdev nodes,
// for recording on the device itself or on a desktop Linux touchscreen
// without going through adb. It feeds the exact same core pipeline as the
// adb backend.
package evdevinput

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"touchrec/internal/core/gesture"
)

// DeviceInfo describes one local input device node.
type DeviceInfo struct {
	Path  string
	Name  string
	Touch bool
	MaxX  int32
	MaxY  int32
}

// ListDevices enumerates local input devices and whether each exposes both
// multitouch position axes.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := evdev.OpenWithFlags(path.Path, os.O_RDONLY)
		if err != nil {
			continue
		}

		info := DeviceInfo{Path: path.Path, Name: path.Name}
		if actualName, err := dev.Name(); err == nil && actualName != "" {
			info.Name = actualName
		}
		if maxX, maxY, ok := touchAxisMaxima(dev); ok {
			info.Touch = true
			info.MaxX = maxX
			info.MaxY = maxY
		}
		devices = append(devices, info)
		_ = dev.Close()
	}
	return devices, nil
}

// FindTouchDevice returns a descriptor for the first local device (in path
// order) that declares both ABS_MT position axes. An explicit devicePath
// skips the walk but is still validated for the axes.
func FindTouchDevice(devicePath string) (gesture.DeviceDescriptor, error) {
	if devicePath != "" {
		dev, err := evdev.OpenWithFlags(devicePath, os.O_RDONLY)
		if err != nil {
			return gesture.DeviceDescriptor{}, err
		}
		defer dev.Close()

		maxX, maxY, ok := touchAxisMaxima(dev)
		if !ok {
			return gesture.DeviceDescriptor{}, fmt.Errorf("%s does not expose multitouch position axes", devicePath)
		}
		return gesture.DeviceDescriptor{Path: devicePath, MaxX: maxX, MaxY: maxY}, nil
	}

	devices, err := ListDevices()
	if err != nil {
		return gesture.DeviceDescriptor{}, err
	}
	for _, info := range devices {
		if info.Touch {
			return gesture.DeviceDescriptor{Path: info.Path, MaxX: info.MaxX, MaxY: info.MaxY}, nil
		}
	}
	return gesture.DeviceDescriptor{}, gesture.ErrNoTouchDevice
}

func touchAxisMaxima(dev *evdev.InputDevice) (int32, int32, bool) {
	absInfos, err := dev.AbsInfos()
	if err != nil {
		return 0, 0, false
	}
	x, okX := absInfos[evdev.ABS_MT_POSITION_X]
	y, okY := absInfos[evdev.ABS_MT_POSITION_Y]
	if !okX || !okY || x.Maximum < 0 || y.Maximum < 0 {
		return 0, 0, false
	}
	return x.Maximum, y.Maximum, true
}

// Source streams kernel input events from one device node. Implements
// gesture.EventSource; Close unblocks a pending Next.
type Source struct {
	dev       *evdev.InputDevice
	closeOnce sync.Once
	closeErr  error
}

func Open(devicePath string) (*Source, error) {
	dev, err := evdev.OpenWithFlags(devicePath, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return &Source{dev: dev}, nil
}

func (s *Source) Next() (gesture.RawEvent, error) {
	ev, err := s.dev.ReadOne()
	if err != nil {
		if isDeviceClosedError(err) {
			return gesture.RawEvent{}, io.EOF
		}
		return gesture.RawEvent{}, err
	}
	return gesture.RawEvent{
		Type:  uint16(ev.Type),
		Code:  uint16(ev.Code),
		Value: ev.Value,
		Time:  time.Unix(ev.Time.Sec, ev.Time.Usec*1000),
	}, nil
}

func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.dev.Close()
	})
	return s.closeErr
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV) || errors.Is(err, os.ErrClosed)
}
