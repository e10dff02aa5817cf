package gesture

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// EventSource is a blocking pull source of raw events. Next returns io.EOF
// when the stream ends; Close must unblock a pending Next.
type EventSource interface {
	Next() (RawEvent, error)
	Close() error
}

// LineEventSource adapts a blocking line stream (adb getevent output) into
// an EventSource by running every line through the decoder. Undecodable
// lines are skipped silently; they are expected, not exceptional.
type LineEventSource struct {
	stream  io.ReadCloser
	scanner *bufio.Scanner
	decoder *Decoder
}

func NewLineEventSource(stream io.ReadCloser) *LineEventSource {
	return &LineEventSource{
		stream:  stream,
		scanner: bufio.NewScanner(stream),
		decoder: NewDecoder(),
	}
}

func (s *LineEventSource) Next() (RawEvent, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if ev, ok := s.decoder.Decode(line); ok {
			return ev, nil
		}
	}
	if err := s.scanner.Err(); err != nil {
		return RawEvent{}, err
	}
	return RawEvent{}, io.EOF
}

func (s *LineEventSource) Close() error {
	return s.stream.Close()
}

// Recorder owns the capture phase: it pulls events from a source, runs them
// through the lifecycle tracker, classifies closed sessions, and appends the
// resulting commands with their captured inter-command intervals. Single
// logical owner of all session and sequence state; no other goroutine
// mutates it.
type Recorder struct {
	tracker    *Tracker
	classifier *Classifier
	log        Logger

	commands  []Command
	lastEnd   time.Time
	hasLast   bool
	dropped   int
	discarded int
}

func NewRecorder(cfg ClassifierConfig, dev DeviceDescriptor, geo ScreenGeometry, log Logger) (*Recorder, error) {
	if log == nil {
		log = NopLogger{}
	}
	classifier, err := NewClassifier(cfg, dev, geo, log)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		tracker:    NewTracker(log),
		classifier: classifier,
		log:        log,
	}, nil
}

// Run consumes the source until it ends or ctx is cancelled. Cancellation
// closes the source to unblock the pending read and discards any session
// still armed; commands classified before that point are kept either way.
// Stream end (EOF) is a graceful stop, not an error.
func (r *Recorder) Run(ctx context.Context, source EventSource) error {
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = source.Close()
		case <-watchDone:
		}
	}()

	for {
		ev, err := source.Next()
		if err != nil {
			r.discarded += r.tracker.DiscardActive()
			if ctx.Err() != nil {
				r.log.Info("capture cancelled", "commands", len(r.commands))
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				r.log.Info("event stream ended", "commands", len(r.commands))
				return nil
			}
			return err
		}

		if session := r.tracker.Feed(ev); session != nil {
			r.record(session)
		}
	}
}

func (r *Recorder) record(s *Session) {
	cmd, ok := r.classifier.Classify(s)
	if !ok {
		r.dropped++
		return
	}
	if r.hasLast {
		interval := cmd.CapturedAt.Sub(r.lastEnd).Milliseconds()
		cmd.IntervalBeforeMS = &interval
	}
	r.lastEnd = cmd.CapturedAt
	r.hasLast = true
	r.commands = append(r.commands, cmd)

	if cmd.Kind == KindTap {
		r.log.Info("captured tap", "x", cmd.X, "y", cmd.Y)
	} else {
		r.log.Info("captured swipe",
			"x1", cmd.X, "y1", cmd.Y, "x2", cmd.X2, "y2", cmd.Y2,
			"duration_ms", cmd.DurationMS)
	}
}

// Commands returns a copy of the captured sequence in capture order.
func (r *Recorder) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// DroppedSessions counts sessions closed without enough data to classify.
func (r *Recorder) DroppedSessions() int { return r.dropped }

// DiscardedSessions counts armed sessions lost to cancellation or stream end.
func (r *Recorder) DiscardedSessions() int { return r.discarded }
