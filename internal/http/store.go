package http

import (
	"sync"

	"github.com/pagelens/backend/internal/audit/report"
)

// Store retains recent reports for export, bounded by evicting the oldest.
type Store struct {
	mu      sync.RWMutex
	max     int
	order   []string
	reports map[string]*report.Report
}

// NewStore creates a store holding at most max reports.
func NewStore(max int) *Store {
	if max <= 0 {
		max = 256
	}
	return &Store{
		max:     max,
		reports: make(map[string]*report.Report, max),
	}
}

// Put stores a report under its run id.
func (s *Store) Put(rep *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[rep.ID]; !exists {
		s.order = append(s.order, rep.ID)
	}
	s.reports[rep.ID] = rep

	for len(s.order) > s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.reports, oldest)
	}
}

// Get returns a stored report by run id.
func (s *Store) Get(id string) (*report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[id]
	return rep, ok
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
