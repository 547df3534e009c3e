package readstore

import (
	"context"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/infra"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/pgconv"
	"carwash-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	ListOccupyingBookingsByServiceAndDate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOccupyingBookingsByServiceAndDateParams) ([]sqlc.ListOccupyingBookingsByServiceAndDateRow, error)
	GetBookingViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingViewByIDRow, error)
	GetBookingViewByConfirmationCode(ctx context.Context, db sqlc.DBTX, confirmationCode string) (sqlc.GetBookingViewByConfirmationCodeRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

// OccupancyFor only returns slot-holding bookings, so every entry occupies.
func (r *BookingReadStore) OccupancyFor(ctx context.Context, serviceID uuid.UUID, date calendar.Date) ([]availability.Occupancy, error) {
	rows, err := r.queries.ListOccupyingBookingsByServiceAndDate(ctx, r.db, sqlc.ListOccupyingBookingsByServiceAndDateParams{
		ServiceID:   serviceID,
		BookingDate: pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupying bookings", err)
	}
	out := make([]availability.Occupancy, 0, len(rows))
	for _, row := range rows {
		out = append(out, availability.Occupancy{
			Slot:     pgconv.IntervalFromPgtype(row.StartTime, row.EndTime),
			Occupies: true,
		})
	}
	return out, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	return toBookingView(sqlc.GetBookingViewByConfirmationCodeRow(row)), nil
}

func (r *BookingReadStore) FindByConfirmationCode(ctx context.Context, code string) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByConfirmationCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by confirmation code", err)
	}
	return toBookingView(row), nil
}

// Both view queries select the same columns, so their row types convert.
func toBookingView(row sqlc.GetBookingViewByConfirmationCodeRow) *queries.BookingView {
	return &queries.BookingView{
		ID:                 row.ID,
		ServiceID:          row.ServiceID,
		ServiceName:        row.ServiceName,
		Date:               pgconv.DateFromPgtype(row.BookingDate),
		StartTime:          pgconv.TimeOfDayFromPgtype(row.StartTime),
		EndTime:            pgconv.TimeOfDayFromPgtype(row.EndTime),
		Status:             row.Status,
		PaymentStatus:      row.PaymentStatus,
		CustomerName:       row.CustomerName,
		CustomerEmail:      row.CustomerEmail,
		CustomerPhone:      pgconv.StringFromPgtype(row.CustomerPhone),
		Notes:              pgconv.StringFromPgtype(row.Notes),
		ConfirmationCode:   row.ConfirmationCode,
		CancellationReason: pgconv.StringFromPgtype(row.CancellationReason),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		PriceCents:         row.PriceCents,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
