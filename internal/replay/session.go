package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/config"
	"github.com/dshills/oskey/internal/hid"
	"github.com/dshills/oskey/internal/keymap"
	"github.com/dshills/oskey/internal/osstate"
)

// Entry is the outcome of one key event.
type Entry struct {
	Step    Step
	Pressed bool
	Result  behavior.Result
	Err     error

	// Reports are the host-visible changes caused by this event.
	Reports []hid.Report

	// OS is the active OS after the event.
	OS osstate.OS
}

// Trace is the record of one script run.
type Trace struct {
	SessionID string
	Script    string
	Started   time.Time
	Entries   []Entry
	FinalOS   osstate.OS

	// Metrics holds per-behavior counters at the end of the run.
	Metrics []keymap.BehaviorMetrics
	Drops   uint64
}

// Failures returns the number of entries that returned an error.
func (t *Trace) Failures() int {
	n := 0
	for _, e := range t.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Reports returns every report in the trace in order.
func (t *Trace) Reports() []hid.Report {
	var out []hid.Report
	for _, e := range t.Entries {
		out = append(out, e.Reports...)
	}
	return out
}

// Session replays scripts against one keyboard. State such as the active
// OS and held keys carries over between runs.
type Session struct {
	id          string
	kb          *config.Keyboard
	rec         *hid.Recorder
	stopOnError bool
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithStopOnError stops a run at the first failing event.
func WithStopOnError() Option {
	return func(s *Session) {
		s.stopOnError = true
	}
}

// NewSession builds f into a keyboard whose reports are captured by the
// session.
func NewSession(f *config.File, opts ...Option) (*Session, error) {
	rec := &hid.Recorder{}
	kb, err := config.Build(f, config.BuildOptions{Sink: rec, Metrics: true})
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:  uuid.New().String(),
		kb:  kb,
		rec: rec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Keyboard returns the keyboard being driven.
func (s *Session) Keyboard() *config.Keyboard {
	return s.kb
}

// Run plays script and returns its trace. Event failures are recorded in
// the trace and do not stop the run unless WithStopOnError was given; the
// returned error is then the first failure. Cancelling ctx stops the run
// between events.
func (s *Session) Run(ctx context.Context, script *Script) (*Trace, error) {
	if s.kb == nil {
		return nil, ErrNoKeyboard
	}

	trace := &Trace{
		SessionID: s.id,
		Script:    script.Name,
		Started:   time.Now(),
	}
	logger.Debug("replay started", "session", s.id, "script", script.Name, "steps", len(script.Steps))

	finish := func() {
		trace.FinalOS = s.kb.Store.Get()
		if m := s.kb.Router.Metrics(); m != nil {
			trace.Metrics = m.All()
			trace.Drops = m.TotalDrops()
		}
	}

	for _, step := range script.Steps {
		var events []bool
		switch step.Action {
		case ActionPress:
			events = []bool{true}
		case ActionRelease:
			events = []bool{false}
		case ActionTap:
			events = []bool{true, false}
		}

		for _, pressed := range events {
			select {
			case <-ctx.Done():
				finish()
				return trace, ctx.Err()
			default:
			}

			e := s.deliver(step, pressed)
			trace.Entries = append(trace.Entries, e)
			if e.Err != nil {
				logger.Warn("event failed", "session", s.id, "line", step.Line, "step", step.String(), "pressed", pressed, "err", e.Err)
				if s.stopOnError {
					finish()
					return trace, fmt.Errorf("%s:%d: %w", script.Name, step.Line, e.Err)
				}
			}
		}
	}

	finish()
	logger.Debug("replay finished", "session", s.id, "events", len(trace.Entries), "final_os", trace.FinalOS)
	return trace, nil
}

func (s *Session) deliver(step Step, pressed bool) Entry {
	s.rec.Reset()

	var (
		res behavior.Result
		err error
	)
	if pressed {
		res, err = s.kb.Keymap.Press(step.Position)
	} else {
		res, err = s.kb.Keymap.Release(step.Position)
	}

	reports := make([]hid.Report, len(s.rec.Reports))
	copy(reports, s.rec.Reports)

	return Entry{
		Step:    step,
		Pressed: pressed,
		Result:  res,
		Err:     err,
		Reports: reports,
		OS:      s.kb.Store.Get(),
	}
}
