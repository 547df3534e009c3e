package notify

import (
	"context"
	"time"

	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
)

// TypeBookingEvent is the asynq task type a notification worker subscribes to.
const TypeBookingEvent = "booking:event"

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier defers delivery (email, SMS) to a background worker that
// retries on its own schedule.
type AsynqNotifier struct {
	client taskEnqueuer
	queue  string
}

func NewAsynqNotifier(client taskEnqueuer, queue string) *AsynqNotifier {
	return &AsynqNotifier{client: client, queue: queue}
}

func NewBookingEventTask(event shared.BookingEvent) (*asynq.Task, error) {
	body, err := encode(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingEvent, body), nil
}

func (n *AsynqNotifier) Notify(ctx context.Context, event shared.BookingEvent) error {
	task, err := NewBookingEventTask(event)
	if err != nil {
		return err
	}
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.Queue(n.queue),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return errs.Wrap(err, "asynq enqueue")
	}
	return nil
}
