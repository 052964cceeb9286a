package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/application/leadimport"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// reportKey scopes a stored report to its tenant, so a report ID leaked
// across tenants cannot be taken by the wrong one.
func reportKey(tenantID uuid.UUID, id string) string {
	return tenantID.String() + "/" + id
}

// reportEntry holds a stored report with its expiration
type reportEntry struct {
	report    *leadimport.BatchReport
	expiresAt time.Time
}

// InMemoryReportStore implements leadimport.ReportStore using an in-memory
// map. Reports are removed on Take, so every download is one-shot. This is
// suitable for single-instance deployments and testing.
type InMemoryReportStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]reportEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ leadimport.ReportStore = (*InMemoryReportStore)(nil)

// NewInMemoryReportStore creates a new in-memory report store.
// It starts a background goroutine to clean up expired reports.
func NewInMemoryReportStore(ttl time.Duration) *InMemoryReportStore {
	store := &InMemoryReportStore{
		ttl:      ttl,
		entries:  make(map[string]reportEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Save stores a report under its tenant and ID until it is taken or its
// TTL lapses
func (s *InMemoryReportStore) Save(ctx context.Context, report *leadimport.BatchReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[reportKey(report.TenantID, report.ID)] = reportEntry{
		report:    report,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Take retrieves a report and removes it in the same step. A second Take
// with the same ID returns shared.ErrNotFound, as does an expired report or
// a Take under the wrong tenant.
func (s *InMemoryReportStore) Take(ctx context.Context, tenantID uuid.UUID, id string) (*leadimport.BatchReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reportKey(tenantID, id)
	e, exists := s.entries[key]
	if !exists {
		return nil, shared.ErrNotFound
	}
	delete(s.entries, key)

	if time.Now().After(e.expiresAt) {
		return nil, shared.ErrNotFound
	}
	return e.report, nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (s *InMemoryReportStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired reports
func (s *InMemoryReportStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired reports from the store
func (s *InMemoryReportStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Size returns the number of stored reports (for testing/monitoring)
func (s *InMemoryReportStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
