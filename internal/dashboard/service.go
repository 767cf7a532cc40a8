package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wolfman30/submissions-dashboard/internal/observability/metrics"
	"github.com/wolfman30/submissions-dashboard/internal/submissions"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

// Fetcher retrieves the full submission set.
type Fetcher interface {
	Fetch(ctx context.Context) ([]submissions.Submission, error)
}

// Cache persists the last good record set between restarts.
type Cache interface {
	Load(ctx context.Context) ([]submissions.Submission, time.Time, error)
	Save(ctx context.Context, records []submissions.Submission, updatedAt time.Time) error
}

// Service owns the dashboard state. Refreshes are serialized; readers get copies.
type Service struct {
	fetcher Fetcher
	cache   Cache
	metrics *metrics.DashboardMetrics
	logger  *logging.Logger
	now     func() time.Time

	refreshMu sync.Mutex
	mu        sync.RWMutex
	state     Snapshot
}

// NewService wires a dashboard service. cache and m may be nil.
func NewService(fetcher Fetcher, cache Cache, m *metrics.DashboardMetrics, logger *logging.Logger) *Service {
	if fetcher == nil {
		panic("dashboard: fetcher required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		state: Snapshot{
			Status: Status{Kind: StatusLoading, Message: "Loading data from server..."},
		},
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// DataAge reports whole seconds since the last fetch attempt.
func (s *Service) DataAge() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DataAge(s.now())
}

// Refresh fetches the records once. On failure the previous records are kept
// and the status carries the user-facing error.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.RLock()
	previous := s.state.Status
	s.mu.RUnlock()
	s.setStatus(Status{Kind: StatusLoading, Message: "Loading data from server..."})

	start := s.now()
	records, err := s.fetcher.Fetch(ctx)
	finished := s.now()
	elapsed := finished.Sub(start).Seconds()

	if err != nil && ctx.Err() != nil {
		// caller went away; the shared snapshot is left as it was
		s.setStatus(previous)
		s.logger.Debug("submissions fetch abandoned", "error", err)
		return s.Snapshot(), err
	}
	if err != nil {
		s.metrics.ObserveFetch(fetchLabel(err), elapsed, 0)
		msg := submissions.Describe(err)
		s.logger.Warn("submissions fetch failed", "error", err, "status", msg)
		s.mu.Lock()
		s.state.Status = Status{Kind: StatusError, Message: msg}
		s.state.UpdatedAt = finished
		snap := s.state.clone()
		s.mu.Unlock()
		return snap, err
	}

	s.metrics.ObserveFetch("success", elapsed, len(records))
	s.mu.Lock()
	s.state = Snapshot{
		Records:   records,
		Stats:     submissions.ComputeStats(records, finished),
		Status:    Status{Kind: StatusConnected, Message: fmt.Sprintf("Connected - %d records loaded", len(records))},
		UpdatedAt: finished,
	}
	snap := s.state.clone()
	s.mu.Unlock()

	s.logger.Info("submissions refreshed", "records", len(records), "duration_ms", finished.Sub(start).Milliseconds())

	if s.cache != nil {
		if err := s.cache.Save(ctx, records, finished); err != nil {
			s.logger.Warn("snapshot cache save failed", "error", err)
		}
	}
	return snap, nil
}

// Warm restores the last cached record set so the table is populated before
// the first poll completes. A cache miss is not an error.
func (s *Service) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	records, updatedAt, err := s.cache.Load(ctx)
	if errors.Is(err, ErrCacheMiss) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("dashboard: warm cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.UpdatedAt.IsZero() {
		// a live fetch already landed
		return nil
	}
	s.metrics.SetRecords(len(records))
	s.state = Snapshot{
		Records:   records,
		Stats:     submissions.ComputeStats(records, s.now()),
		Status:    Status{Kind: StatusConnected, Message: fmt.Sprintf("Restored %d cached records", len(records))},
		UpdatedAt: updatedAt,
	}
	s.logger.Info("dashboard warmed from cache", "records", len(records), "cached_at", updatedAt)
	return nil
}

func (s *Service) setStatus(st Status) {
	s.mu.Lock()
	s.state.Status = st
	s.mu.Unlock()
}

func fetchLabel(err error) string {
	var httpErr *submissions.HTTPError
	var netErr *submissions.NetworkError
	switch {
	case errors.Is(err, submissions.ErrTimeout):
		return "timeout"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, submissions.ErrInvalidResponse):
		return "invalid_response"
	case errors.As(err, &netErr):
		return "network_error"
	default:
		return "error"
	}
}
