package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"touchrec/internal/core/gesture"
)

type config struct {
	record      bool
	replayPath  string
	listDevices bool
	showEvents  bool

	outPath    string
	backend    string
	adbPath    string
	serial     string
	devicePath string

	screenSize  string
	orientation int

	tapThresholdPx    float64
	defaultIntervalMS int64
	commandTimeout    time.Duration
	logLevel          slog.Level
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseConfig(args []string) (config, error) {
	cfg := config{}
	flags := flag.NewFlagSet("touchrec", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	var logLevelRaw string

	flags.BoolVar(&cfg.record, "record", false, "Record touch gestures until interrupted or the stream ends.")
	flags.StringVar(&cfg.replayPath, "replay", "", "Replay the gesture script at this path.")
	flags.BoolVar(&cfg.listDevices, "list-devices", false, "Print input devices and their touch axes, then exit.")
	flags.BoolVar(&cfg.showEvents, "show-events", false, "Print raw events with their screen mapping (debugging).")
	flags.StringVar(&cfg.outPath, "out", "touch_commands.json", "Output path for the recorded gesture script.")
	flags.StringVar(&cfg.backend, "backend", "adb", "Event source backend: adb or evdev (evdev is linux-only, capture modes only).")
	flags.StringVar(&cfg.adbPath, "adb", "adb", "Path to the adb executable.")
	flags.StringVar(&cfg.serial, "serial", "", "Device serial for adb -s when several devices are attached.")
	flags.StringVar(&cfg.devicePath, "device", "", "Touch device path, e.g. /dev/input/event2. Auto-detected if omitted.")
	flags.StringVar(&cfg.screenSize, "screen-size", "", "Screen resolution WxH for the evdev backend, e.g. 1080x1920.")
	flags.IntVar(&cfg.orientation, "orientation", gesture.DefaultOrientation, "Display rotation in quarter turns (0-3) for the evdev backend.")
	flags.Float64Var(&cfg.tapThresholdPx, "tap-threshold", gesture.DefaultTapThresholdPx, "Screen distance in px below which a touch is a tap.")
	flags.Int64Var(&cfg.defaultIntervalMS, "default-interval-ms", 500, "Replay interval used when a captured interval is missing or out of band.")
	flags.DurationVar(&cfg.commandTimeout, "timeout", 5*time.Second, "Timeout for one-shot adb calls.")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	modes := 0
	for _, on := range []bool{cfg.record, cfg.replayPath != "", cfg.listDevices, cfg.showEvents} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return cfg, fmt.Errorf("exactly one of --record, --replay, --list-devices, --show-events is required")
	}

	switch cfg.backend {
	case "adb":
	case "evdev":
		if cfg.replayPath != "" {
			return cfg, fmt.Errorf("--backend evdev cannot actuate; replay requires --backend adb")
		}
	default:
		return cfg, fmt.Errorf("invalid --backend %q (expected adb|evdev)", cfg.backend)
	}

	if cfg.tapThresholdPx <= 0 {
		return cfg, fmt.Errorf("--tap-threshold must be > 0")
	}
	if cfg.defaultIntervalMS < 100 || cfg.defaultIntervalMS > 10000 {
		return cfg, fmt.Errorf("--default-interval-ms must be within [100, 10000]")
	}
	if cfg.orientation < 0 || cfg.orientation > 3 {
		return cfg, fmt.Errorf("--orientation must be in 0..3")
	}
	if cfg.record && cfg.outPath == "" {
		return cfg, fmt.Errorf("--out must not be empty")
	}

	parsedLevel, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return cfg, err
	}
	cfg.logLevel = parsedLevel
	return cfg, nil
}

// evdevGeometry builds screen geometry from flags; the evdev backend has no
// window manager to ask.
func (cfg config) evdevGeometry() (gesture.ScreenGeometry, error) {
	if cfg.screenSize == "" {
		return gesture.ScreenGeometry{}, fmt.Errorf("--screen-size is required with --backend evdev")
	}
	parts := strings.SplitN(cfg.screenSize, "x", 2)
	if len(parts) != 2 {
		return gesture.ScreenGeometry{}, fmt.Errorf("invalid --screen-size %q (expected WxH)", cfg.screenSize)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return gesture.ScreenGeometry{}, fmt.Errorf("invalid --screen-size %q: %w", cfg.screenSize, err)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return gesture.ScreenGeometry{}, fmt.Errorf("invalid --screen-size %q: %w", cfg.screenSize, err)
	}
	if width <= 0 || height <= 0 {
		return gesture.ScreenGeometry{}, fmt.Errorf("--screen-size must be positive, got %dx%d", width, height)
	}
	return gesture.ScreenGeometry{Width: width, Height: height, Orientation: cfg.orientation}, nil
}

func newSlogLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newSlogLogger(cfg.logLevel)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case cfg.listDevices:
		err = runListDevices(ctx, cfg)
	case cfg.showEvents:
		err = runShowEvents(ctx, cfg, logger)
	case cfg.record:
		err = runRecord(ctx, cfg, logger)
	default:
		err = runReplay(ctx, cfg, logger)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
