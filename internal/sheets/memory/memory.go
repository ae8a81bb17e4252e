// Package memory keeps exported reports in process memory.
package memory

import (
	"context"
	"sync"

	ports "wealthify/internal/sheets"
	"wealthify/internal/stats"
)

type Store struct {
	mu      sync.Mutex
	reports map[string]stats.MonthReport
	writes  int
}

var _ ports.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{reports: make(map[string]stats.MonthReport)}
}

// WriteReport replaces any earlier report for the same month.
func (s *Store) WriteReport(_ context.Context, report stats.MonthReport) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.Key()] = report
	s.writes++
	return "memory:" + report.Key(), nil
}

func (s *Store) Report(key string) (stats.MonthReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[key]
	return r, ok
}

// Writes counts WriteReport calls, including overwrites.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
