package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/google/uuid"
)

var ErrViewClosed = errors.New("schedule view closed")

// ViewState is a copy of what a WeekView currently shows.
type ViewState struct {
	WeekStart     time.Time
	SearchTerm    string
	HighlightedID int
	Loading       bool
	Schedule      schedule.Schedule
	Err           error
}

// Grid builds the weekly grid for the visible week.
func (s ViewState) Grid() schedule.Grid {
	return schedule.BuildGrid(s.Schedule, s.WeekStart)
}

// Panel lists the team for one slot, marking the highlighted member.
func (s ViewState) Panel(date time.Time, shift schedule.Shift) schedule.Panel {
	return schedule.BuildPanel(s.Schedule.Team, date, shift, s.HighlightedID)
}

// WeekView holds the selected week of one staff member's schedule screen.
// Every navigation issues a fetch tagged with a monotonically increasing
// token; a result is applied only while its token is the latest one, and
// superseded fetches are cancelled.
type WeekView struct {
	ID      string
	kind    schedule.ViewKind
	staffID int
	loader  schedule.ScheduleService
	now     func() time.Time

	mu       sync.Mutex
	state    ViewState
	seq      uint64
	applied  uint64
	cancel   context.CancelFunc
	base     context.Context
	stop     context.CancelFunc
	changed  chan struct{}
	closed   bool
	lastUsed time.Time
}

// NewWeekView creates a view positioned on the week containing today. No
// fetch is issued until the first navigation or Refresh.
func NewWeekView(loader schedule.ScheduleService, kind schedule.ViewKind, staffID int, today time.Time, now func() time.Time) *WeekView {
	if now == nil {
		now = time.Now
	}
	base, stop := context.WithCancel(context.Background())
	return &WeekView{
		ID:       uuid.NewString(),
		kind:     kind,
		staffID:  staffID,
		loader:   loader,
		now:      now,
		state:    ViewState{WeekStart: schedule.StartOfWeek(today)},
		base:     base,
		stop:     stop,
		changed:  make(chan struct{}),
		lastUsed: now(),
	}
}

func (v *WeekView) Kind() schedule.ViewKind { return v.kind }

func (v *WeekView) StaffID() int { return v.staffID }

func (v *WeekView) PreviousWeek() {
	v.shift(-7)
}

func (v *WeekView) NextWeek() {
	v.shift(7)
}

func (v *WeekView) shift(days int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.WeekStart = v.state.WeekStart.AddDate(0, 0, days)
	v.issue()
}

// GoToDate moves to the week containing d. Re-selecting the week that is
// already loading does not start another fetch.
func (v *WeekView) GoToDate(d time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ws := schedule.StartOfWeek(d)
	if ws.Equal(v.state.WeekStart) && v.state.Loading {
		v.touch()
		return
	}
	v.state.WeekStart = ws
	v.issue()
}

// Refresh re-fetches the visible week.
func (v *WeekView) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issue()
}

// RefreshIfIdle re-fetches the visible week unless a fetch is already in
// flight, in which case callers simply wait for it.
func (v *WeekView) RefreshIfIdle() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Loading {
		v.touch()
		return
	}
	v.issue()
}

// Search highlights the first team member matching term, or clears the
// highlight when nobody matches.
func (v *WeekView) Search(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.SearchTerm = term
	v.highlight()
	v.touch()
}

// Snapshot returns the current state without waiting for in-flight fetches.
func (v *WeekView) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Wait blocks until the latest issued fetch has been applied.
func (v *WeekView) Wait(ctx context.Context) (ViewState, error) {
	for {
		v.mu.Lock()
		if v.closed {
			v.mu.Unlock()
			return ViewState{}, ErrViewClosed
		}
		if v.applied == v.seq {
			st := v.state
			v.mu.Unlock()
			return st, nil
		}
		ch := v.changed
		v.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return v.Snapshot(), ctx.Err()
		}
	}
}

// IdleFor reports how long the view has gone without use.
func (v *WeekView) IdleFor(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return now.Sub(v.lastUsed)
}

// Close abandons any in-flight fetch; its result is never applied.
func (v *WeekView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.stop()
	close(v.changed)
}

// issue must be called with mu held.
func (v *WeekView) issue() {
	if v.closed {
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	token := v.seq
	ctx, cancel := context.WithCancel(v.base)
	v.cancel = cancel
	v.state.Loading = true
	v.touch()

	r := schedule.WeekRange(v.state.WeekStart)
	go v.run(ctx, token, r)
}

func (v *WeekView) run(ctx context.Context, token uint64, r schedule.Range) {
	s, err := v.loader.Load(ctx, v.kind, v.staffID, r)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || token != v.seq {
		slog.Debug("discarding stale schedule fetch", "view", v.ID, "token", token, "latest", v.seq)
		return
	}

	v.applied = token
	v.state.Loading = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if err != nil {
		slog.Error("schedule fetch error", "view", v.ID, "staff_id", v.staffID, "error", err)
		v.state.Schedule = schedule.Schedule{}
		v.state.Err = err
	} else {
		v.state.Schedule = s
		v.state.Err = nil
	}
	v.highlight()

	close(v.changed)
	v.changed = make(chan struct{})
}

func (v *WeekView) highlight() {
	if p, ok := schedule.Search(v.state.Schedule.Team, v.state.SearchTerm); ok {
		v.state.HighlightedID = p.StaffID
		return
	}
	v.state.HighlightedID = 0
}

func (v *WeekView) touch() {
	v.lastUsed = v.now()
}
