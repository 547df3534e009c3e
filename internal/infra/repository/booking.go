package repository

import (
	"context"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/infra/repository/converter"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	LockOverlappingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.LockOverlappingBookingsParams) ([]sqlc.LockOverlappingBookingsRow, error)
	ConfirmationCodeExists(ctx context.Context, db sqlc.DBTX, confirmationCode string) (bool, error)
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error)
	LockBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{queries: queries}
}

func (r *BookingRepository) LockOverlapping(
	ctx context.Context,
	tx sqlc.DBTX,
	serviceID uuid.UUID,
	date calendar.Date,
	slot calendar.Interval,
	excludeID *uuid.UUID,
) (int, error) {
	rows, err := r.queries.LockOverlappingBookings(ctx, tx, sqlc.LockOverlappingBookingsParams{
		ServiceID:   serviceID,
		BookingDate: pgconv.DateToPgtype(date),
		EndTime:     pgconv.TimeOfDayToPgtype(slot.End),
		StartTime:   pgconv.TimeOfDayToPgtype(slot.Start),
		ExcludeID:   pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to lock overlapping bookings", err)
	}
	return len(rows), nil
}

func (r *BookingRepository) CodeExists(ctx context.Context, tx sqlc.DBTX, code string) (bool, error) {
	exists, err := r.queries.ConfirmationCodeExists(ctx, tx, code)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check confirmation code", err)
	}
	return exists, nil
}

func (r *BookingRepository) Insert(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	if _, err := r.queries.CreateBooking(ctx, tx, converter.BookingToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) LockByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.LockBookingByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return converter.BookingFromRow(row), nil
}

func (r *BookingRepository) Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	n, err := r.queries.UpdateBooking(ctx, tx, converter.BookingToUpdateParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
