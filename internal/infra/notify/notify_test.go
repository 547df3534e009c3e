//go:build unit

package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"carwash-booking/internal/infra/notify"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() shared.BookingEvent {
	return shared.BookingEvent{
		Type:             shared.EventBookingCreated,
		BookingID:        uuid.New(),
		ServiceID:        uuid.New(),
		Date:             calendar.NewDate(2026, 10, 20),
		StartTime:        calendar.MustTimeOfDay("10:00"),
		Status:           "PENDING",
		PaymentStatus:    "PENDING",
		ConfirmationCode: "AB12CD34",
		CustomerEmail:    "jane@example.com",
		OccurredAt:       time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestAsync_NeverBlocksOrFails(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &blockingNotifier{release: make(chan struct{}), err: errors.New("smtp down")}
	a := notify.NewAsync(inner, time.Second, 4, logger)

	start := time.Now()
	err := a.Notify(context.Background(), sampleEvent())
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(inner.release)
	require.NoError(t, a.Wait(context.Background()))
	assert.Contains(t, buf.String(), "booking notification failed")
}

func TestAsync_DetachesFromRequestCancellation(t *testing.T) {
	inner := &recordingNotifier{}
	a := notify.NewAsync(inner, time.Second, 4, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.Notify(ctx, sampleEvent()))
	cancel()
	require.NoError(t, a.Wait(context.Background()))

	require.Len(t, inner.events, 1)
	assert.NoError(t, inner.ctxErr, "request cancellation must not cancel delivery")
}

func TestAsync_DropsBeyondMaxInFlight(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &blockingNotifier{release: make(chan struct{})}
	a := notify.NewAsync(inner, time.Second, 2, logger)

	for range 5 {
		require.NoError(t, a.Notify(context.Background(), sampleEvent()))
	}
	assert.Equal(t, 3, strings.Count(buf.String(), "booking notification dropped"))

	close(inner.release)
	require.NoError(t, a.Wait(context.Background()))
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestAsync_SlotIsReusedAfterDelivery(t *testing.T) {
	inner := &recordingNotifier{}
	a := notify.NewAsync(inner, time.Second, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, a.Notify(context.Background(), sampleEvent()))
	assert.Eventually(t, func() bool {
		inner.mu.Lock()
		defer inner.mu.Unlock()
		return len(inner.events) == 1
	}, time.Second, 5*time.Millisecond)

	// The goroutine releases its slot just after recording.
	assert.Eventually(t, func() bool {
		_ = a.Notify(context.Background(), sampleEvent())
		inner.mu.Lock()
		defer inner.mu.Unlock()
		return len(inner.events) >= 2
	}, time.Second, 50*time.Millisecond)
	require.NoError(t, a.Wait(context.Background()))
}

func TestAsync_NotifyAfterWaitIsDropped(t *testing.T) {
	var buf bytes.Buffer
	inner := &recordingNotifier{}
	a := notify.NewAsync(inner, time.Second, 4, slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, a.Wait(context.Background()))
	require.NoError(t, a.Notify(context.Background(), sampleEvent()))

	assert.Contains(t, buf.String(), "booking notification dropped")
	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.Empty(t, inner.events)
}

func TestAsync_NotifyDuringWait(t *testing.T) {
	inner := &recordingNotifier{}
	a := notify.NewAsync(inner, time.Second, 8, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Notify(context.Background(), sampleEvent()))
		}()
	}
	require.NoError(t, a.Wait(context.Background()))
	wg.Wait()

	// Whatever was accepted before Wait has been delivered by now.
	inner.mu.Lock()
	delivered := len(inner.events)
	inner.mu.Unlock()
	require.NoError(t, a.Wait(context.Background()))
	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.Equal(t, delivered, len(inner.events))
}

func TestAMQPNotifier_Publish(t *testing.T) {
	ch := &fakeChannel{}
	n := notify.NewAMQPNotifier(ch, "bookings")
	event := sampleEvent()

	require.NoError(t, n.Notify(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "bookings", got.exchange)
	assert.Equal(t, "booking.created", got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "2026-10-20", decoded["date"])
	assert.Equal(t, "10:00", decoded["startTime"])
	assert.Equal(t, "AB12CD34", decoded["confirmationCode"])
}

func TestAMQPNotifier_PublishError(t *testing.T) {
	n := notify.NewAMQPNotifier(&fakeChannel{err: amqp.ErrClosed}, "bookings")
	err := n.Notify(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestKafkaNotifier_KeysByBooking(t *testing.T) {
	w := &fakeWriter{}
	n := notify.NewKafkaNotifier(w)
	event := sampleEvent()

	require.NoError(t, n.Notify(context.Background(), event))
	require.NoError(t, n.Close())

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte(event.BookingID.String()), w.msgs[0].Key)
	assert.Equal(t, "event-type", w.msgs[0].Headers[0].Key)
	assert.True(t, w.closed)
}

func TestAsynqNotifier_EnqueuesTask(t *testing.T) {
	q := &fakeEnqueuer{}
	n := notify.NewAsynqNotifier(q, "notifications")
	event := sampleEvent()

	require.NoError(t, n.Notify(context.Background(), event))

	require.Len(t, q.tasks, 1)
	assert.Equal(t, notify.TypeBookingEvent, q.tasks[0].Type())
	var decoded shared.BookingEvent
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &decoded))
	assert.Equal(t, event.BookingID, decoded.BookingID)
	assert.True(t, event.Date.Equal(decoded.Date))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, n.Notify(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"confirmation_code":"AB12CD34"`)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

type blockingNotifier struct {
	release chan struct{}
	err     error
	calls   atomic.Int32
}

func (b *blockingNotifier) Notify(ctx context.Context, _ shared.BookingEvent) error {
	b.calls.Add(1)
	<-b.release
	return b.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []shared.BookingEvent
	ctxErr error
}

func (r *recordingNotifier) Notify(ctx context.Context, event shared.BookingEvent) error {
	time.Sleep(20 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.ctxErr = ctx.Err()
	return nil
}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "1", Queue: "notifications"}, nil
}
