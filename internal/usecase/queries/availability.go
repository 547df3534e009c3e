package queries

import (
	"context"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DurationMin int       `json:"duration_min"`
	PriceCents  int64     `json:"price_cents"`
	Capacity    int       `json:"capacity"`
}

type CatalogReadStore interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	ActiveServices(ctx context.Context) ([]*catalog.Service, error)
	// BusinessHoursFor returns catalog.Closed for weekdays without a row.
	BusinessHoursFor(ctx context.Context, weekday time.Weekday) (*catalog.BusinessHours, error)
	// HolidayOn returns nil when date is a regular day.
	HolidayOn(ctx context.Context, date calendar.Date) (*catalog.Holiday, error)
}

type OccupancyReadStore interface {
	OccupancyFor(ctx context.Context, serviceID uuid.UUID, date calendar.Date) ([]availability.Occupancy, error)
}

// SnapshotReader hands fn read stores that all see one read-only snapshot,
// so hours, holidays and occupancy agree with each other.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, catalog CatalogReadStore, occupancy OccupancyReadStore) error) error
}

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, serviceID uuid.UUID, date calendar.Date) ([]availability.TimeSlot, error)
	ListServices(ctx context.Context) ([]ServiceView, error)
}

type availabilityQueriesImpl struct {
	snapshot   SnapshotReader
	catalog    CatalogReadStore
	calculator *availability.Calculator
}

func NewAvailabilityQueries(snapshot SnapshotReader, catalog CatalogReadStore, calculator *availability.Calculator) AvailabilityQueries {
	return &availabilityQueriesImpl{snapshot: snapshot, catalog: catalog, calculator: calculator}
}

// CheckAvailability always reads the ledger; wrap it with
// NewCachedAvailabilityQueries for the cached read path.
func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, serviceID uuid.UUID, date calendar.Date) ([]availability.TimeSlot, error) {
	if date.IsZero() {
		return nil, errs.Mark(errs.New("date is required"), errs.ErrValidation)
	}

	var slots []availability.TimeSlot
	err := q.snapshot.ReadSnapshot(ctx, func(ctx context.Context, cat CatalogReadStore, occ OccupancyReadStore) error {
		var err error
		slots, err = q.computeSlots(ctx, cat, occ, serviceID, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (q *availabilityQueriesImpl) computeSlots(
	ctx context.Context,
	cat CatalogReadStore,
	occ OccupancyReadStore,
	serviceID uuid.UUID,
	date calendar.Date,
) ([]availability.TimeSlot, error) {
	svc, err := cat.ServiceByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.Active {
		return []availability.TimeSlot{}, nil
	}

	holiday, err := cat.HolidayOn(ctx, date)
	if err != nil {
		return nil, err
	}
	if holiday != nil {
		return []availability.TimeSlot{}, nil
	}

	hours, err := cat.BusinessHoursFor(ctx, date.Weekday())
	if err != nil {
		return nil, err
	}
	if !hours.IsOpen {
		return []availability.TimeSlot{}, nil
	}

	existing, err := occ.OccupancyFor(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}

	return q.calculator.ComputeSlots(svc, hours, nil, existing), nil
}

func (q *availabilityQueriesImpl) ListServices(ctx context.Context) ([]ServiceView, error) {
	services, err := q.catalog.ActiveServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceView, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceView{
			ID:          s.ID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			PriceCents:  s.PriceCents,
			Capacity:    s.Capacity,
		})
	}
	return out, nil
}
