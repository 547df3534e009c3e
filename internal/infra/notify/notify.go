// Package notify publishes booking lifecycle events. Delivery is
// best-effort: a reservation never waits on, or fails because of, a
// notification.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/shared"

	"golang.org/x/sync/semaphore"
)

// Async hands each event to inner on its own goroutine with a deadline
// detached from the request. At most maxInFlight deliveries run at once;
// events beyond that are logged and dropped.
type Async struct {
	inner   shared.BookingNotifier
	timeout time.Duration
	logger  *slog.Logger
	slots   *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsync(inner shared.BookingNotifier, timeout time.Duration, maxInFlight int, logger *slog.Logger) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Async{
		inner:   inner,
		timeout: timeout,
		logger:  logger,
		slots:   semaphore.NewWeighted(int64(maxInFlight)),
	}
}

const DefaultMaxInFlight = 64

func (a *Async) Notify(ctx context.Context, event shared.BookingEvent) error {
	if !a.start() {
		a.logger.WarnContext(ctx, "booking notification dropped",
			"event", string(event.Type),
			"booking_id", event.BookingID.String())
		return nil
	}
	go func() {
		defer a.done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		if err := a.inner.Notify(ctx, event); err != nil {
			a.logger.WarnContext(ctx, "booking notification failed",
				"event", string(event.Type),
				"booking_id", event.BookingID.String(),
				"error", err.Error())
		}
	}()
	return nil
}

// start reserves a delivery slot. It fails once Wait has begun or when
// every slot is taken.
func (a *Async) start() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || !a.slots.TryAcquire(1) {
		return false
	}
	a.wg.Add(1)
	return true
}

func (a *Async) done() {
	a.slots.Release(1)
	a.wg.Done()
}

// Wait stops accepting events and blocks until in-flight notifications
// finish or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event shared.BookingEvent) error {
	n.logger.InfoContext(ctx, "booking event",
		"event", string(event.Type),
		"booking_id", event.BookingID.String(),
		"service_id", event.ServiceID.String(),
		"date", event.Date.String(),
		"start_time", event.StartTime.String(),
		"status", event.Status,
		"payment_status", event.PaymentStatus,
		"confirmation_code", event.ConfirmationCode)
	return nil
}

func encode(event shared.BookingEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, errs.Wrap(err, "marshal booking event")
	}
	return body, nil
}
