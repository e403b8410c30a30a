package notification

import (
	"context"
	"errors"
	"time"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/email"
)

const (
	maxSendAttempts = 3
	retryBaseDelay  = 10 * time.Second
)

// Dispatcher drains the reminder queue and delivers notification emails.
// Every execution produces a typed outcome in the event log: a missing
// interview is terminal (the record was deliberately deleted), a send
// failure is retried with backoff.
type Dispatcher struct {
	queue      *ReminderQueue
	interviews domain.InterviewRepository
	mailer     *email.Mailer
	events     *EventLog
	poll       time.Duration
}

func NewDispatcher(
	queue *ReminderQueue,
	interviews domain.InterviewRepository,
	mailer *email.Mailer,
	events *EventLog,
	poll time.Duration,
) *Dispatcher {
	return &Dispatcher{
		queue:      queue,
		interviews: interviews,
		mailer:     mailer,
		events:     events,
		poll:       poll,
	}
}

// Run polls the queue until ctx is cancelled. Intended to run in its own
// goroutine next to the HTTP server.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	due, err := d.queue.Due(ctx, time.Now())
	if err != nil {
		d.events.QueueError("poll", 0, err)
		return
	}
	for _, id := range due {
		d.runWithRetry(ctx, "interview_reminder", id, d.deliverReminder)
	}
}

// NotifyFeedback dispatches the feedback notice for an interview. It is
// fire-and-forget from the caller's point of view but fully accounted for
// in the event log. Implements domain.FeedbackNotifier.
func (d *Dispatcher) NotifyFeedback(interviewID int64) {
	go d.runWithRetry(context.Background(), "interview_feedback", interviewID, d.deliverFeedback)
}

func (d *Dispatcher) runWithRetry(ctx context.Context, kind string, interviewID int64, deliver func(context.Context, int64) (Outcome, error)) {
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		outcome, err := deliver(ctx, interviewID)
		d.events.JobResult(kind, interviewID, outcome, attempt, err)

		if outcome != OutcomeSendFailed || attempt == maxSendAttempts {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		}
	}
}

func (d *Dispatcher) deliverReminder(ctx context.Context, interviewID int64) (Outcome, error) {
	iv, err := d.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return OutcomeInterviewGone, nil
		}
		return OutcomeSendFailed, err
	}
	// Cancelled or completed since scheduling; the reminder is moot
	if !iv.IsActive() {
		return OutcomeInterviewGone, nil
	}

	recipients := nonEmpty(iv.CandidateEmail, iv.InterviewerEmail)
	if len(recipients) == 0 {
		return OutcomeSendFailed, errors.New("no recipient addresses on interview")
	}

	if err := d.mailer.SendInterviewReminder(recipients, mailData(iv)); err != nil {
		return OutcomeSendFailed, err
	}
	return OutcomeDelivered, nil
}

func (d *Dispatcher) deliverFeedback(ctx context.Context, interviewID int64) (Outcome, error) {
	iv, err := d.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return OutcomeInterviewGone, nil
		}
		return OutcomeSendFailed, err
	}
	if iv.CandidateEmail == "" {
		return OutcomeSendFailed, errors.New("no candidate address on interview")
	}

	if err := d.mailer.SendFeedbackNotice([]string{iv.CandidateEmail}, mailData(iv)); err != nil {
		return OutcomeSendFailed, err
	}
	return OutcomeDelivered, nil
}

func mailData(iv *domain.Interview) email.InterviewMailData {
	return email.InterviewMailData{
		CandidateName:   iv.CandidateName,
		InterviewerName: iv.InterviewerName,
		JobTitle:        iv.JobTitle,
		ScheduledDate:   iv.ScheduledDate,
		Duration:        iv.Duration,
		InterviewType:   iv.InterviewType,
		MeetingLink:     iv.MeetingLink,
		Recommendation:  iv.Feedback,
	}
}

func nonEmpty(addrs ...string) []string {
	var out []string
	for _, a := range addrs {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
