package queue

import (
	"context"
	"log/slog"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/models"
)

type notice struct {
	ctx       context.Context
	recipient models.User
	actor     models.User
	alert     fanout.Alert
}

// NotifyQueue implements fanout.Notifier by queueing alerts for a worker pool
// that calls the wrapped notifier. Notify only fails when the queue is full
// or closed.
type NotifyQueue struct {
	pool   *pool[notice]
	next   fanout.Notifier
	logger *slog.Logger
}

// NewNotifyQueue starts workers sending queued alerts through next.
func NewNotifyQueue(next fanout.Notifier, workers, buffer int, logger *slog.Logger) *NotifyQueue {
	q := &NotifyQueue{next: next, logger: logger.With("component", "notify_queue")}
	q.pool = newPool(workers, buffer, q.work)
	return q
}

// Notify queues the alert. The worker runs with ctx's values but not its
// cancellation, so a finished request does not abort the send.
func (q *NotifyQueue) Notify(ctx context.Context, recipient, actor models.User, alert fanout.Alert) error {
	return q.pool.submit(ctx, notice{
		ctx:       context.WithoutCancel(ctx),
		recipient: recipient,
		actor:     actor,
		alert:     alert,
	})
}

func (q *NotifyQueue) work(id int, n notice) {
	if err := q.next.Notify(n.ctx, n.recipient, n.actor, n.alert); err != nil {
		q.logger.WarnContext(n.ctx, "notification failed",
			"worker", id,
			"recipient_profile_id", n.recipient.ProfileID,
			"kind", n.alert.Kind,
			"error", err,
		)
	}
}

// Close stops accepting alerts and waits until the queue is drained.
func (q *NotifyQueue) Close() {
	q.pool.close()
}
