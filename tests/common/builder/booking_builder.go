//go:build unit || e2e

package builder

import (
	"time"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/domain/catalog"
	reqdto "carwash-booking/internal/handler/dto/request"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/pgconv"
	"carwash-booking/internal/usecase/commands"
	"carwash-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	ServiceID        uuid.UUID
	ServiceName      string
	DurationMin      int
	PriceCents       int64
	Capacity         int
	ServiceActive    bool
	Date             calendar.Date
	StartTime        calendar.TimeOfDay
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ConfirmationCode string
	Notes            string
	Status           booking.Status
	PaymentStatus    booking.PaymentStatus
	CreatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:               uuid.New(),
		ServiceID:        uuid.New(),
		ServiceName:      "Premium Wash",
		DurationMin:      30,
		PriceCents:       2500,
		Capacity:         1,
		ServiceActive:    true,
		Date:             calendar.NewDate(2026, time.October, 20), // Tuesday
		StartTime:        calendar.MustTimeOfDay("10:00"),
		CustomerName:     "Jane Doe",
		CustomerEmail:    "jane@example.com",
		CustomerPhone:    "+15550100",
		ConfirmationCode: "AB12CD34",
		Notes:            "Blue hatchback",
		Status:           booking.StatusPending,
		PaymentStatus:    booking.PaymentPending,
		CreatedAt:        created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildService() *catalog.Service {
	return &catalog.Service{
		ID:          b.ServiceID,
		Name:        b.ServiceName,
		DurationMin: b.DurationMin,
		PriceCents:  b.PriceCents,
		Capacity:    b.Capacity,
		Active:      b.ServiceActive,
	}
}

func (b *BookingBuilder) BuildCustomer() booking.Customer {
	return booking.Customer{Name: b.CustomerName, Email: b.CustomerEmail, Phone: b.CustomerPhone}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.BuildService(), b.Date, b.StartTime, b.BuildCustomer(), b.ConfirmationCode, b.Notes, b.CreatedAt)
}

// BuildReconstructed skips creation rules so any status can be set up.
func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.Reconstruct(
		b.ID,
		b.ServiceID,
		b.Date,
		calendar.NewInterval(b.StartTime, b.DurationMin),
		b.Status,
		b.PaymentStatus,
		b.BuildCustomer(),
		b.ConfirmationCode,
		b.Notes,
		"",
		nil,
		b.CreatedAt,
		b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	slot := calendar.NewInterval(b.StartTime, b.DurationMin)
	return sqlc.Bookings{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		BookingDate:      pgconv.DateToPgtype(b.Date),
		StartTime:        pgconv.TimeOfDayToPgtype(slot.Start),
		EndTime:          pgconv.TimeOfDayToPgtype(slot.End),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    pgconv.StringToNullablePgtype(b.CustomerPhone),
		Notes:            pgconv.StringToNullablePgtype(b.Notes),
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt:        pgconv.TimeToPgtype(b.CreatedAt),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.StartTime.AddMinutes(b.DurationMin),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Notes:            b.Notes,
		ConfirmationCode: b.ConfirmationCode,
		PriceCents:       b.PriceCents,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ServiceID:     b.ServiceID.String(),
		Date:          b.Date.String(),
		StartTime:     b.StartTime.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ServiceID:     b.ServiceID.String(),
		Date:          b.Date.String(),
		StartTime:     b.StartTime.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
	}
}
