package notification

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// reminderKey is the sorted set holding pending reminders: member is the
// interview ID, score is the unix timestamp the reminder becomes due.
// Keying by interview ID means rescheduling overwrites the old entry and
// cancellation is a single ZREM.
const reminderKey = "interviews:reminders"

// ReminderQueue is a delay queue for interview reminders backed by a Redis
// sorted set. Without Redis it degrades to an in-memory map, which loses
// pending reminders on restart but keeps a single-node deployment working.
type ReminderQueue struct {
	client *redis.Client // nil when Redis is not configured
	events *EventLog

	mu  sync.Mutex
	mem map[int64]time.Time
}

func NewReminderQueue(client *redis.Client, events *EventLog) *ReminderQueue {
	return &ReminderQueue{
		client: client,
		events: events,
		mem:    make(map[int64]time.Time),
	}
}

// Schedule queues (or re-queues) the reminder for the given interview
func (q *ReminderQueue) Schedule(ctx context.Context, interviewID int64, at time.Time) error {
	if q.client == nil {
		q.mu.Lock()
		q.mem[interviewID] = at
		q.mu.Unlock()
		return nil
	}

	err := q.client.ZAdd(ctx, reminderKey, redis.Z{
		Score:  float64(at.Unix()),
		Member: strconv.FormatInt(interviewID, 10),
	}).Err()
	if err != nil {
		q.events.QueueError("schedule", interviewID, err)
	}
	return err
}

// Cancel drops the pending reminder, if any
func (q *ReminderQueue) Cancel(ctx context.Context, interviewID int64) error {
	if q.client == nil {
		q.mu.Lock()
		delete(q.mem, interviewID)
		q.mu.Unlock()
		return nil
	}

	err := q.client.ZRem(ctx, reminderKey, strconv.FormatInt(interviewID, 10)).Err()
	if err != nil {
		q.events.QueueError("cancel", interviewID, err)
	}
	return err
}

// Due claims and returns the interview IDs whose reminders are due at now.
// A claimed entry is removed from the queue; if a concurrent worker already
// removed it, it is skipped, so each reminder is delivered at most once.
func (q *ReminderQueue) Due(ctx context.Context, now time.Time) ([]int64, error) {
	if q.client == nil {
		q.mu.Lock()
		defer q.mu.Unlock()
		var due []int64
		for id, at := range q.mem {
			if !at.After(now) {
				due = append(due, id)
				delete(q.mem, id)
			}
		}
		return due, nil
	}

	members, err := q.client.ZRangeByScore(ctx, reminderKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, err
	}

	var due []int64
	for _, member := range members {
		removed, err := q.client.ZRem(ctx, reminderKey, member).Result()
		if err != nil {
			return due, err
		}
		if removed == 0 {
			continue // claimed by another worker
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue // malformed member, drop it
		}
		due = append(due, id)
	}
	return due, nil
}
