package converter

import (
	"carwash-booking/internal/domain/booking"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	customer := b.Customer()
	return sqlc.CreateBookingParams{
		ID:               b.ID(),
		ServiceID:        b.ServiceID(),
		BookingDate:      pgconv.DateToPgtype(b.Date()),
		StartTime:        pgconv.TimeOfDayToPgtype(b.Slot().Start),
		EndTime:          pgconv.TimeOfDayToPgtype(b.Slot().End),
		Status:           string(b.Status()),
		PaymentStatus:    string(b.PaymentStatus()),
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerPhone:    pgconv.StringToNullablePgtype(customer.Phone),
		Notes:            pgconv.StringToNullablePgtype(b.Notes()),
		ConfirmationCode: b.ConfirmationCode(),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToUpdateParams(b *booking.Booking) sqlc.UpdateBookingParams {
	return sqlc.UpdateBookingParams{
		ID:                 b.ID(),
		BookingDate:        pgconv.DateToPgtype(b.Date()),
		StartTime:          pgconv.TimeOfDayToPgtype(b.Slot().Start),
		EndTime:            pgconv.TimeOfDayToPgtype(b.Slot().End),
		Status:             string(b.Status()),
		PaymentStatus:      string(b.PaymentStatus()),
		CancellationReason: pgconv.StringToNullablePgtype(b.CancellationReason()),
		CancelledAt:        pgconv.TimePtrToPgtype(b.CancelledAt()),
		UpdatedAt:          pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingFromRow(row sqlc.Bookings) *booking.Booking {
	return booking.Reconstruct(
		row.ID,
		row.ServiceID,
		pgconv.DateFromPgtype(row.BookingDate),
		pgconv.IntervalFromPgtype(row.StartTime, row.EndTime),
		booking.Status(row.Status),
		booking.PaymentStatus(row.PaymentStatus),
		booking.Customer{
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			Phone: pgconv.StringFromPgtype(row.CustomerPhone),
		},
		row.ConfirmationCode,
		pgconv.StringFromPgtype(row.Notes),
		pgconv.StringFromPgtype(row.CancellationReason),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
