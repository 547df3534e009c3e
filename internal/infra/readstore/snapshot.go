package readstore

import (
	"context"

	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/usecase/queries"
	"carwash-booking/internal/usecase/shared"
)

// Snapshot opens a read-only transaction and binds both read stores to it.
type Snapshot struct {
	uow      shared.UnitOfWork
	catalog  CatalogReadQueries
	bookings BookingViewQueries
}

func NewSnapshot(uow shared.UnitOfWork, catalog CatalogReadQueries, bookings BookingViewQueries) *Snapshot {
	return &Snapshot{uow: uow, catalog: catalog, bookings: bookings}
}

func (s *Snapshot) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, catalog queries.CatalogReadStore, occupancy queries.OccupancyReadStore) error) error {
	return s.uow.WithinReadOnly(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		return fn(ctx, NewCatalogReadStore(s.catalog, db), NewBookingReadStore(s.bookings, db))
	})
}
