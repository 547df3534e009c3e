package readstore

import (
	"context"
	"time"

	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/infra"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CatalogReadQueries interface {
	GetServiceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Services, error)
	ListActiveServices(ctx context.Context, db sqlc.DBTX) ([]sqlc.Services, error)
	GetBusinessHoursByWeekday(ctx context.Context, db sqlc.DBTX, weekday int16) (sqlc.BusinessHours, error)
	GetHolidayByDate(ctx context.Context, db sqlc.DBTX, holidayDate pgtype.Date) (sqlc.Holidays, error)
}

type CatalogReadStore struct {
	queries CatalogReadQueries
	db      sqlc.DBTX
}

func NewCatalogReadStore(queries CatalogReadQueries, db sqlc.DBTX) *CatalogReadStore {
	return &CatalogReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	row, err := r.queries.GetServiceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get service by id", err)
	}
	return toService(row)
}

func (r *CatalogReadStore) ActiveServices(ctx context.Context) ([]*catalog.Service, error) {
	rows, err := r.queries.ListActiveServices(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active services", err)
	}
	out := make([]*catalog.Service, 0, len(rows))
	for _, row := range rows {
		svc, err := toService(row)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r *CatalogReadStore) BusinessHoursFor(ctx context.Context, weekday time.Weekday) (*catalog.BusinessHours, error) {
	row, err := r.queries.GetBusinessHoursByWeekday(ctx, r.db, int16(weekday))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return catalog.Closed(weekday), nil
		}
		return nil, infra.WrapRepoErr("failed to get business hours", err)
	}

	var brk *calendar.Interval
	if row.BreakStart.Valid && row.BreakEnd.Valid {
		b := pgconv.IntervalFromPgtype(row.BreakStart, row.BreakEnd)
		brk = &b
	}
	hours, err := catalog.NewBusinessHours(weekday, row.IsOpen,
		pgconv.TimeOfDayFromPgtype(row.OpenTime),
		pgconv.TimeOfDayFromPgtype(row.CloseTime),
		brk)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid business hours row", err)
	}
	return hours, nil
}

func (r *CatalogReadStore) HolidayOn(ctx context.Context, date calendar.Date) (*catalog.Holiday, error) {
	row, err := r.queries.GetHolidayByDate(ctx, r.db, pgconv.DateToPgtype(date))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get holiday", err)
	}
	return &catalog.Holiday{Date: pgconv.DateFromPgtype(row.HolidayDate), Name: row.Name}, nil
}

func toService(row sqlc.Services) (*catalog.Service, error) {
	svc, err := catalog.NewService(row.ID, row.Name, int(row.DurationMinutes), row.PriceCents, int(row.Capacity), row.IsActive)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid service row", err)
	}
	return svc, nil
}
