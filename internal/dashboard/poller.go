package dashboard

import (
	"context"
	"time"

	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

type refresher interface {
	Refresh(ctx context.Context) (Snapshot, error)
}

// Poller refreshes the dashboard immediately and then on a fixed interval.
type Poller struct {
	svc      refresher
	logger   *logging.Logger
	interval time.Duration
}

func NewPoller(svc refresher, logger *logging.Logger) *Poller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{
		svc:      svc,
		logger:   logger,
		interval: 30 * time.Second,
	}
}

func (p *Poller) WithInterval(d time.Duration) *Poller {
	if d > 0 {
		p.interval = d
	}
	return p
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if p.svc == nil {
		return
	}
	if _, err := p.svc.Refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Debug("poll refresh failed", "error", err)
	}
}
