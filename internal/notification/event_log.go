package notification

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Outcome is the typed result of a background notification job. Every job
// execution is recorded, including the ones that find nothing to do - the
// silent-failure policy of fire-and-forget queues is deliberately not
// replicated here.
type Outcome string

const (
	OutcomeDelivered     Outcome = "delivered"
	OutcomeInterviewGone Outcome = "interview_gone" // interview deleted or no longer eligible
	OutcomeSendFailed    Outcome = "send_failed"
)

// EventLog records notification job outcomes as structured events,
// separate from the application log so they can be shipped and queried
// independently.
type EventLog struct {
	logger *zap.Logger
}

func NewEventLog() (*EventLog, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{
		"component": "notifications",
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &EventLog{logger: logger}, nil
}

// NewNopEventLog returns an event log that discards everything. Used in tests.
func NewNopEventLog() *EventLog {
	return &EventLog{logger: zap.NewNop()}
}

// JobResult records one execution of a notification job
func (l *EventLog) JobResult(kind string, interviewID int64, outcome Outcome, attempt int, err error) {
	fields := []zap.Field{
		zap.String("job", kind),
		zap.Int64("interview_id", interviewID),
		zap.String("outcome", string(outcome)),
		zap.Int("attempt", attempt),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	switch outcome {
	case OutcomeDelivered:
		l.logger.Info("notification job finished", fields...)
	case OutcomeInterviewGone:
		l.logger.Warn("notification job found no interview", fields...)
	default:
		l.logger.Error("notification job failed", fields...)
	}
}

// QueueError records a scheduling-side failure (enqueue/cancel)
func (l *EventLog) QueueError(op string, interviewID int64, err error) {
	l.logger.Error("reminder queue operation failed",
		zap.String("op", op),
		zap.Int64("interview_id", interviewID),
		zap.Error(err),
	)
}

// SweepResult records one retention sweep run
func (l *EventLog) SweepResult(removed int64, cutoff time.Time, err error) {
	if err != nil {
		l.logger.Error("retention sweep failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}
	l.logger.Info("retention sweep finished",
		zap.Int64("removed", removed),
		zap.Time("cutoff", cutoff),
	)
}

// Sync flushes buffered log entries. Call during graceful shutdown.
func (l *EventLog) Sync() {
	_ = l.logger.Sync()
}
