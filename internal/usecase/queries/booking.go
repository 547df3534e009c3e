package queries

import (
	"context"
	"strings"
	"time"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingView is the read model returned to callers; it joins the booking
// with its service.
type BookingView struct {
	ID                 uuid.UUID          `json:"id"`
	ServiceID          uuid.UUID          `json:"service_id"`
	ServiceName        string             `json:"service_name"`
	Date               calendar.Date      `json:"date"`
	StartTime          calendar.TimeOfDay `json:"start_time"`
	EndTime            calendar.TimeOfDay `json:"end_time"`
	Status             string             `json:"status"`
	PaymentStatus      string             `json:"payment_status"`
	CustomerName       string             `json:"customer_name"`
	CustomerEmail      string             `json:"customer_email"`
	CustomerPhone      string             `json:"customer_phone"`
	Notes              string             `json:"notes"`
	ConfirmationCode   string             `json:"confirmation_code"`
	CancellationReason string             `json:"cancellation_reason"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	PriceCents         int64              `json:"price_cents"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByConfirmationCode(ctx context.Context, code string) (*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByConfirmationCode(ctx context.Context, code string) (*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

// GetByConfirmationCode does not round-trip the store for codes that cannot exist.
func (q *bookingQueriesImpl) GetByConfirmationCode(ctx context.Context, code string) (*BookingView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !booking.IsValidConfirmationCode(code) {
		return nil, errs.ErrBookingNotFound
	}
	v, err := q.store.FindByConfirmationCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}
