// Package adbbridge talks to an Android device through the adb binary:
// capability dumps, raw event streams, screen geometry, and tap/swipe
// actuation. Every call can fail with a timeout or nonzero exit; callers
// decide what is recoverable.
package adbbridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"touchrec/internal/core/gesture"
)

type Config struct {
	// ADBPath is the adb executable; defaults to "adb" on PATH.
	ADBPath string
	// Serial selects a device when more than one is attached.
	Serial string
	// CommandTimeout bounds one-shot shell calls (tap, swipe, wm size).
	CommandTimeout time.Duration
	// DiscoveryTimeout bounds the capability dump; getevent -p walks every
	// device node and is slower than a plain shell call.
	DiscoveryTimeout time.Duration
}

type Bridge struct {
	cfg Config
	log gesture.Logger
}

func New(cfg Config, log gesture.Logger) *Bridge {
	if cfg.ADBPath == "" {
		cfg.ADBPath = "adb"
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 5 * time.Second
	}
	if cfg.DiscoveryTimeout <= 0 {
		cfg.DiscoveryTimeout = 15 * time.Second
	}
	if log == nil {
		log = gesture.NopLogger{}
	}
	return &Bridge{cfg: cfg, log: log}
}

func (b *Bridge) args(rest ...string) []string {
	var out []string
	if b.cfg.Serial != "" {
		out = append(out, "-s", b.cfg.Serial)
	}
	return append(out, rest...)
}

func (b *Bridge) run(ctx context.Context, timeout time.Duration, rest ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.cfg.ADBPath, b.args(rest...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("adb %s: %w: %s", strings.Join(rest, " "), err, detail)
		}
		return "", fmt.Errorf("adb %s: %w", strings.Join(rest, " "), err)
	}
	return stdout.String(), nil
}

// CheckConnection verifies at least one device is attached and online.
func (b *Bridge) CheckConnection(ctx context.Context) error {
	out, err := b.run(ctx, b.cfg.CommandTimeout, "devices")
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "device" {
			return nil
		}
	}
	return fmt.Errorf("no online device in adb devices output")
}

// CapabilityDump returns the full getevent capability listing for the
// attached device. The caller owns device selection; the dump is plain text
// for gesture.FindTouchDevice.
func (b *Bridge) CapabilityDump(ctx context.Context) (string, error) {
	return b.run(ctx, b.cfg.DiscoveryTimeout, "shell", "getevent", "-p", "-l")
}

// ScreenGeometry reads the display resolution and rotation. A missing or
// unparseable rotation falls back to landscape; that fallback is policy, not
// a silent guess, and is logged as such.
func (b *Bridge) ScreenGeometry(ctx context.Context) (gesture.ScreenGeometry, error) {
	sizeOut, err := b.run(ctx, b.cfg.CommandTimeout, "shell", "wm", "size")
	if err != nil {
		return gesture.ScreenGeometry{}, err
	}
	width, height, err := parseWMSize(sizeOut)
	if err != nil {
		return gesture.ScreenGeometry{}, err
	}

	orientation := gesture.DefaultOrientation
	if rotOut, err := b.run(ctx, b.cfg.CommandTimeout, "shell", "dumpsys", "window", "displays"); err != nil {
		b.log.Warn("could not read display rotation, assuming landscape", "err", err)
	} else if rot, ok := parseRotation(rotOut); ok {
		orientation = rot
	} else {
		b.log.Warn("no rotation in dumpsys output, assuming landscape")
	}

	return gesture.ScreenGeometry{Width: width, Height: height, Orientation: orientation}, nil
}

// OpenEventStream starts streaming raw events from one device node as a
// line-oriented reader. Closing the returned stream (or cancelling ctx)
// kills the remote getevent.
func (b *Bridge) OpenEventStream(ctx context.Context, devicePath string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, b.cfg.ADBPath, b.args("shell", "getevent", devicePath)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("adb shell getevent %s: %w", devicePath, err)
	}
	b.log.Debug("event stream opened", "device", devicePath)
	return &eventStream{cmd: cmd, out: stdout}, nil
}

// Tap performs "input tap". Implements replay.Actuator.
func (b *Bridge) Tap(x, y int) error {
	_, err := b.run(context.Background(), b.cfg.CommandTimeout,
		"shell", "input", "tap", fmt.Sprint(x), fmt.Sprint(y))
	return err
}

// Swipe performs "input swipe". Implements replay.Actuator.
func (b *Bridge) Swipe(x1, y1, x2, y2 int, durationMS int64) error {
	_, err := b.run(context.Background(), b.cfg.CommandTimeout,
		"shell", "input", "swipe",
		fmt.Sprint(x1), fmt.Sprint(y1), fmt.Sprint(x2), fmt.Sprint(y2),
		fmt.Sprint(durationMS))
	return err
}

type eventStream struct {
	cmd       *exec.Cmd
	out       io.ReadCloser
	closeOnce sync.Once
}

func (s *eventStream) Read(p []byte) (int, error) {
	return s.out.Read(p)
}

func (s *eventStream) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.out.Close()
		_ = s.cmd.Wait()
	})
	return nil
}
