package shared

import (
	"context"
	"time"

	"carwash-booking/internal/pkg/calendar"

	"github.com/google/uuid"
)

// SlotLocker is a set-if-absent lock with expiry. Release only deletes the
// key while it still holds token.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

func SlotLockKey(date calendar.Date, start calendar.TimeOfDay) string {
	return "lock:booking:" + date.String() + ":" + start.String()
}

type AvailabilityInvalidator interface {
	InvalidateAvailability(ctx context.Context, serviceID uuid.UUID, dates ...calendar.Date)
}

type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
	EventBookingRescheduled   BookingEventType = "booking.rescheduled"
	EventPaymentUpdated       BookingEventType = "booking.payment_updated"
)

type BookingEvent struct {
	Type             BookingEventType   `json:"type"`
	BookingID        uuid.UUID          `json:"bookingId"`
	ServiceID        uuid.UUID          `json:"serviceId"`
	Date             calendar.Date      `json:"date"`
	StartTime        calendar.TimeOfDay `json:"startTime"`
	Status           string             `json:"status"`
	PaymentStatus    string             `json:"paymentStatus"`
	ConfirmationCode string             `json:"confirmationCode"`
	CustomerEmail    string             `json:"customerEmail"`
	OccurredAt       time.Time          `json:"occurredAt"`
}

// BookingNotifier must not block the caller for long; results of a
// reservation never depend on it.
type BookingNotifier interface {
	Notify(ctx context.Context, event BookingEvent) error
}
