package lasso

import (
	"sync"
	"time"
)

// Mode describes the lifecycle stage of a selection.
type Mode int

const (
	// ModeIdle is the initial mode: no region has been traced yet.
	ModeIdle Mode = iota
	// ModeDrawing is active between pointer press and release,
	// while the region outline is being traced.
	ModeDrawing
	// ModeEditing is the terminal mode: the path is closed and the
	// boundary can be refined through cursor-proximity relaxation.
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModeEditing:
		return "editing"
	}
	return "unknown"
}

// Config holds the tunable parameters of the selection process.
type Config struct {
	// CloseDelay is the pause between the pointer release and the
	// switch to the editing mode.
	CloseDelay time.Duration
	// TickInterval is the period of the relaxation tick.
	TickInterval time.Duration
	// InfluenceRadius is the distance within which a boundary point
	// is eligible for cursor-directed nudging, in pixels.
	InfluenceRadius float64
	// Damping scales the per-tick nudge amount.
	Damping float64
	// SpeedThreshold is the cursor speed in pixels per millisecond
	// above which the relaxation tick is skipped.
	SpeedThreshold float64
}

// DefaultConfig returns the selection parameters used by the CLI.
func DefaultConfig() Config {
	return Config{
		CloseDelay:      time.Second,
		TickInterval:    30 * time.Millisecond,
		InfluenceRadius: 15,
		Damping:         0.1,
		SpeedThreshold:  0.5,
	}
}

// Selector governs the Idle -> Drawing -> Editing state machine of a single
// freehand selection. Every mutation of the path, the mode and the cursor
// tracker funnels through its methods; the internal mutex makes them safe to
// call from the UI event loop and the relaxation ticker alike.
type Selector struct {
	mu         sync.Mutex
	cfg        Config
	mode       Mode
	path       *Path
	tracker    *Tracker
	closeTimer *time.Timer
}

// NewSelector creates a selector with the cursor centered
// inside the given display area.
func NewSelector(cfg Config, displayW, displayH float64) *Selector {
	center := Point{X: displayW / 2, Y: displayH / 2}
	return &Selector{
		cfg:     cfg,
		tracker: NewTracker(center, time.Now()),
	}
}

// Config returns the selection parameters.
func (s *Selector) Config() Config {
	return s.cfg
}

// Mode returns the current lifecycle mode.
func (s *Selector) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Path returns a snapshot of the traced points.
func (s *Selector) Path() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == nil {
		return nil
	}
	return s.path.Points()
}

// Cursor returns the last tracked pointer position.
func (s *Selector) Cursor() Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Position()
}

// PointerDown starts tracing a new region outline. The event is ignored once
// the selection reached the editing mode: the traced region is final and the
// mode never regresses.
func (s *Selector) PointerDown(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeEditing {
		return
	}
	// Restarting the trace during the close delay discards the previous
	// path; the pending editing switch must not fire against the new one.
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
	s.path = NewPath(p)
	s.tracker.SetPosition(p)
	s.mode = ModeDrawing
}

// PointerMove refreshes the cursor tracker and, while drawing, appends the
// position to the traced path. Every move sample is appended without any
// throttling, so the path density equals the input sampling density.
func (s *Selector) PointerMove(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.SetPosition(p)
	if s.mode == ModeDrawing && s.path != nil {
		s.path.Append(p)
	}
}

// PointerUp ends the tracing: the path gets closed by duplicating its first
// point and, after the configured delay, the selection switches to the
// editing mode. A degenerate path of two or less points stays unclosed and
// is rejected later by the exporter precondition.
func (s *Selector) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeDrawing {
		return
	}
	s.path.Close()

	if s.closeTimer != nil {
		s.closeTimer.Stop()
	}
	s.closeTimer = time.AfterFunc(s.cfg.CloseDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.mode == ModeDrawing {
			s.mode = ModeEditing
		}
	})
}

// Seed adopts an externally built closed path (e.g. the face-seeded ellipse)
// and switches straight to the editing mode. It is a no-op once a region has
// already been traced.
func (s *Selector) Seed(p *Path) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeIdle || p == nil || p.Len() < MinPathPoints {
		return
	}
	s.path = p
	s.mode = ModeEditing
}

// Relax applies one relaxation step: it samples the cursor speed and, when
// the cursor is moving slowly enough, nudges every path point within the
// influence radius toward it. The closing point is pinned back onto the
// first point after each step so the polygon can never silently reopen.
func (s *Selector) Relax(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing || s.path == nil || s.path.Len() < MinPathPoints {
		return
	}
	speed := s.tracker.SampleSpeed(now)
	if speed >= s.cfg.SpeedThreshold {
		return
	}
	relaxPoints(s.path.pts, s.tracker.Position(), s.cfg.InfluenceRadius, s.cfg.Damping)

	if s.path.closed {
		s.path.pts[len(s.path.pts)-1] = s.path.pts[0]
	}
}

// Stop cancels the pending editing switch. It must be called when the
// selection session is torn down, otherwise the deferred mode transition
// would fire against a discarded selector.
func (s *Selector) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}
