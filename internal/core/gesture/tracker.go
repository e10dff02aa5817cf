package gesture

import "time"

// Session is the lifetime of one touch: provisional start coordinates, the
// most recent ("end") coordinates, and the arm/close timestamps. Fields stay
// unset when the firmware never reported them; the classifier is responsible
// for dropping such sessions.
type Session struct {
	Slot      int
	StartTime time.Time
	EndTime   time.Time

	StartX, StartY int32
	EndX, EndY     int32

	HasStartX, HasStartY bool
	HasEndX, HasEndY     bool
}

// Complete reports whether every field the classifier needs is present.
func (s *Session) Complete() bool {
	return s.HasStartX && s.HasStartY && s.HasEndX && s.HasEndY &&
		!s.StartTime.IsZero() && !s.EndTime.IsZero()
}

// Tracker runs the per-touch lifecycle: Idle -> Armed -> Closed -> Idle.
//
// A session arms on whichever arrives first of an X sample, a Y sample, or a
// touch-down signal, and its start time is that first event's timestamp.
// Firmware orders these three inconsistently between devices and even
// between touches, so none of them is treated as authoritative; an earlier
// revision of this tool keyed everything off BTN_TOUCH and corrupted or
// missed session starts whenever coordinates arrived first.
//
// Sessions are keyed by multitouch slot. Single-touch firmware that never
// emits ABS_MT_SLOT implicitly runs everything on slot 0.
type Tracker struct {
	log      Logger
	sessions map[int]*Session
	slot     int
}

func NewTracker(log Logger) *Tracker {
	if log == nil {
		log = NopLogger{}
	}
	return &Tracker{
		log:      log,
		sessions: make(map[int]*Session),
	}
}

// Feed consumes one event and returns the closed session when the event
// ended a touch, nil otherwise. Closed sessions are handed off exactly once;
// the slot resets to Idle immediately.
func (t *Tracker) Feed(ev RawEvent) *Session {
	switch {
	case ev.Type == EventTypeAbs && ev.Code == CodeAbsMTSlot:
		t.slot = int(ev.Value)

	case ev.Type == EventTypeAbs && ev.Code == CodeAbsMTTrackingID:
		if ev.Value == -1 {
			return t.close(ev.Time)
		}
		t.arm(ev.Time)

	case ev.Type == EventTypeAbs && ev.Code == CodeAbsMTPositionX:
		s := t.arm(ev.Time)
		if !s.HasStartX {
			s.StartX = ev.Value
			s.HasStartX = true
		}
		s.EndX = ev.Value
		s.HasEndX = true

	case ev.Type == EventTypeAbs && ev.Code == CodeAbsMTPositionY:
		s := t.arm(ev.Time)
		if !s.HasStartY {
			s.StartY = ev.Value
			s.HasStartY = true
		}
		s.EndY = ev.Value
		s.HasEndY = true

	case ev.Type == EventTypeKey && ev.Code == CodeBtnTouch:
		if ev.Value == 0 {
			return t.close(ev.Time)
		}
		t.arm(ev.Time)
	}
	return nil
}

func (t *Tracker) arm(ts time.Time) *Session {
	s, ok := t.sessions[t.slot]
	if !ok {
		s = &Session{Slot: t.slot, StartTime: ts}
		t.sessions[t.slot] = s
		t.log.Debug("touch session armed", "slot", t.slot)
	}
	return s
}

func (t *Tracker) close(ts time.Time) *Session {
	s, ok := t.sessions[t.slot]
	if !ok {
		// Touch-up with no armed session; stale release, ignore.
		return nil
	}
	delete(t.sessions, t.slot)
	s.EndTime = ts
	t.log.Debug("touch session closed", "slot", s.Slot)
	return s
}

// ActiveCount reports how many sessions are currently Armed. A session that
// never receives its touch-up stays Armed indefinitely; timing it out is the
// caller's concern.
func (t *Tracker) ActiveCount() int {
	return len(t.sessions)
}

// DiscardActive drops every Armed session and returns how many were lost.
// Called on cancellation and stream end; discarded sessions never become
// commands.
func (t *Tracker) DiscardActive() int {
	n := len(t.sessions)
	if n > 0 {
		t.log.Debug("discarding armed touch sessions", "count", n)
		t.sessions = make(map[int]*Session)
	}
	return n
}
