package schedule

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
)

// ViewStore keeps one WeekView per open schedule screen, keyed by the view
// id the screen carries between requests.
type ViewStore struct {
	loader schedule.ScheduleService
	now    func() time.Time

	mu    sync.Mutex
	views map[string]*WeekView
}

func NewViewStore(loader schedule.ScheduleService, now func() time.Time) *ViewStore {
	if now == nil {
		now = time.Now
	}
	return &ViewStore{
		loader: loader,
		now:    now,
		views:  make(map[string]*WeekView),
	}
}

// Open creates a view positioned on the current week.
func (s *ViewStore) Open(kind schedule.ViewKind, staffID int) *WeekView {
	v := NewWeekView(s.loader, kind, staffID, s.now(), s.now)

	s.mu.Lock()
	s.views[v.ID] = v
	s.mu.Unlock()
	return v
}

// Get returns the view with id when it belongs to (kind, staffID).
func (s *ViewStore) Get(id string, kind schedule.ViewKind, staffID int) (*WeekView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok || v.Kind() != kind || v.StaffID() != staffID {
		return nil, false
	}
	return v, true
}

// GetOrOpen returns the screen's view, or a new one when id is unknown,
// expired or owned by another screen.
func (s *ViewStore) GetOrOpen(id string, kind schedule.ViewKind, staffID int) *WeekView {
	if id != "" {
		if v, ok := s.Get(id, kind, staffID); ok {
			return v
		}
	}
	return s.Open(kind, staffID)
}

// Release closes and forgets the view.
func (s *ViewStore) Release(id string) {
	s.mu.Lock()
	v, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()

	if ok {
		v.Close()
	}
}

// EvictIdle releases views unused for longer than maxIdle and returns how
// many were released.
func (s *ViewStore) EvictIdle(maxIdle time.Duration) int {
	now := s.now()

	s.mu.Lock()
	var idle []*WeekView
	for id, v := range s.views {
		if v.IdleFor(now) > maxIdle {
			idle = append(idle, v)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, v := range idle {
		v.Close()
	}
	return len(idle)
}

func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Close releases every view.
func (s *ViewStore) Close() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*WeekView)
	s.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}
