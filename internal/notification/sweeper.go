package notification

import (
	"context"
	"time"

	"recruiter-backend/internal/domain"
)

// Sweeper periodically deletes completed interviews whose last update is
// older than the retention window, cascading to questions and feedback.
type Sweeper struct {
	interviews domain.InterviewRepository
	events     *EventLog
	retention  time.Duration
	interval   time.Duration
}

func NewSweeper(interviews domain.InterviewRepository, events *EventLog, retention, interval time.Duration) *Sweeper {
	return &Sweeper{
		interviews: interviews,
		events:     events,
		retention:  retention,
		interval:   interval,
	}
}

// Run sweeps once immediately, then on every interval tick until ctx is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)
	removed, err := s.interviews.DeleteCompletedBefore(ctx, cutoff)
	s.events.SweepResult(removed, cutoff, err)
}
