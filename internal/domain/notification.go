package domain

import (
	"context"
	"time"
)

// ReminderScheduler queues and cancels the deferred interview reminder.
// Rescheduling an interview re-queues under the same key, so the old
// reminder is overwritten rather than firing twice.
type ReminderScheduler interface {
	Schedule(ctx context.Context, interviewID int64, at time.Time) error
	Cancel(ctx context.Context, interviewID int64) error
}

// FeedbackNotifier dispatches the immediate feedback notice. Delivery is
// asynchronous; callers never block on it.
type FeedbackNotifier interface {
	NotifyFeedback(interviewID int64)
}
