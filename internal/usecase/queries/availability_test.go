//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/queries"
	queriesmock "carwash-booking/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2026-10-20 is a Tuesday.
var tuesday = calendar.NewDate(2026, 10, 20)

func openHours(open, closing string) *catalog.BusinessHours {
	h, err := catalog.NewBusinessHours(time.Tuesday, true, calendar.MustTimeOfDay(open), calendar.MustTimeOfDay(closing), nil)
	if err != nil {
		panic(err)
	}
	return h
}

func newService(t *testing.T, durationMin, capacity int, active bool) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(uuid.New(), "Basic Wash", durationMin, 1500, capacity, active)
	require.NoError(t, err)
	return svc
}

// snapshot runs fn directly against the given stores and counts how often
// a snapshot was opened.
type snapshot struct {
	catalog   queries.CatalogReadStore
	occupancy queries.OccupancyReadStore
	opened    *int
	err       error
}

func snapshotOf(cat queries.CatalogReadStore, occ queries.OccupancyReadStore) snapshot {
	return snapshot{catalog: cat, occupancy: occ, opened: new(int)}
}

func (s snapshot) ReadSnapshot(ctx context.Context, fn func(context.Context, queries.CatalogReadStore, queries.OccupancyReadStore) error) error {
	*s.opened++
	if s.err != nil {
		return s.err
	}
	return fn(ctx, s.catalog, s.occupancy)
}

func TestAvailabilityQueries_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("success: empty day between 08:00 and 18:00 yields 20 free slots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)

		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		cat.EXPECT().HolidayOn(ctx, tuesday).Return(nil, nil)
		cat.EXPECT().BusinessHoursFor(ctx, time.Tuesday).Return(openHours("08:00", "18:00"), nil)
		occ.EXPECT().OccupancyFor(ctx, svc.ID, tuesday).Return(nil, nil)

		q := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30))
		slots, err := q.CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		require.Len(t, slots, 20)
		assert.Equal(t, "08:00", slots[0].Time.String())
		assert.Equal(t, "17:30", slots[19].Time.String())
		for _, s := range slots {
			assert.True(t, s.Available)
			assert.Equal(t, 1, s.CapacityRemaining)
		}
	})

	t.Run("success: existing booking consumes its slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)

		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		cat.EXPECT().HolidayOn(ctx, tuesday).Return(nil, nil)
		cat.EXPECT().BusinessHoursFor(ctx, time.Tuesday).Return(openHours("08:00", "10:00"), nil)
		occ.EXPECT().OccupancyFor(ctx, svc.ID, tuesday).Return([]availability.Occupancy{
			{Slot: calendar.NewInterval(calendar.MustTimeOfDay("09:00"), 30), Occupies: true},
		}, nil)

		q := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30))
		slots, err := q.CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		want := []availability.TimeSlot{
			{Time: calendar.MustTimeOfDay("08:00"), Available: true, CapacityRemaining: 1},
			{Time: calendar.MustTimeOfDay("08:30"), Available: true, CapacityRemaining: 1},
			{Time: calendar.MustTimeOfDay("09:00"), Available: false, CapacityRemaining: 0},
			{Time: calendar.MustTimeOfDay("09:30"), Available: true, CapacityRemaining: 1},
		}
		if diff := cmp.Diff(want, slots); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("success: holiday offers nothing and skips the ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)

		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		cat.EXPECT().HolidayOn(ctx, tuesday).Return(&catalog.Holiday{Date: tuesday, Name: "Local holiday"}, nil)

		q := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30))
		slots, err := q.CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("success: closed weekday offers nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)

		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		cat.EXPECT().HolidayOn(ctx, tuesday).Return(nil, nil)
		cat.EXPECT().BusinessHoursFor(ctx, time.Tuesday).Return(catalog.Closed(time.Tuesday), nil)

		q := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30))
		slots, err := q.CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("success: inactive service has no availability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, false)
		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)

		slots, err := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30)).CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("error: unknown service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		cat.EXPECT().ServiceByID(ctx, gomock.Any()).Return(nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound))

		_, err := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30)).CheckAvailability(ctx, uuid.New(), tuesday)

		assert.True(t, errs.Is(err, errs.ErrServiceNotFound))
	})

	t.Run("error: missing date is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		q := queries.NewAvailabilityQueries(snapshotOf(cat, queriesmock.NewMockOccupancyReadStore(ctrl)), cat, availability.NewCalculator(30))

		_, err := q.CheckAvailability(ctx, uuid.New(), calendar.Date{})

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("error: ledger failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)
		boom := errors.New("connection reset")

		cat.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		cat.EXPECT().HolidayOn(ctx, tuesday).Return(nil, nil)
		cat.EXPECT().BusinessHoursFor(ctx, time.Tuesday).Return(openHours("08:00", "18:00"), nil)
		occ.EXPECT().OccupancyFor(ctx, svc.ID, tuesday).Return(nil, boom)

		_, err := queries.NewAvailabilityQueries(snapshotOf(cat, occ), cat, availability.NewCalculator(30)).CheckAvailability(ctx, svc.ID, tuesday)

		assert.ErrorIs(t, err, boom)
	})
}

func TestAvailabilityQueries_CheckAvailabilityReadsOneSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("every read of a day happens inside a single snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		occ := queriesmock.NewMockOccupancyReadStore(ctrl)
		svc := newService(t, 30, 1, true)

		inSnapshot := queriesmock.NewMockCatalogReadStore(ctrl)
		inSnapshot.EXPECT().ServiceByID(ctx, svc.ID).Return(svc, nil)
		inSnapshot.EXPECT().HolidayOn(ctx, tuesday).Return(nil, nil)
		inSnapshot.EXPECT().BusinessHoursFor(ctx, time.Tuesday).Return(openHours("08:00", "09:00"), nil)
		occ.EXPECT().OccupancyFor(ctx, svc.ID, tuesday).Return(nil, nil)
		snap := snapshotOf(inSnapshot, occ)

		slots, err := queries.NewAvailabilityQueries(snap, cat, availability.NewCalculator(30)).CheckAvailability(ctx, svc.ID, tuesday)

		require.NoError(t, err)
		assert.Len(t, slots, 2)
		assert.Equal(t, 1, *snap.opened)
	})

	t.Run("snapshot failure is returned as is", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cat := queriesmock.NewMockCatalogReadStore(ctrl)
		boom := errors.New("cannot begin read-only transaction")
		snap := snapshotOf(cat, queriesmock.NewMockOccupancyReadStore(ctrl))
		snap.err = boom

		_, err := queries.NewAvailabilityQueries(snap, cat, availability.NewCalculator(30)).CheckAvailability(ctx, uuid.New(), tuesday)

		assert.ErrorIs(t, err, boom)
	})
}

func TestAvailabilityQueries_ListServices(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cat := queriesmock.NewMockCatalogReadStore(ctrl)
	svc := newService(t, 45, 2, true)
	cat.EXPECT().ActiveServices(ctx).Return([]*catalog.Service{svc}, nil)

	views, err := queries.NewAvailabilityQueries(snapshotOf(cat, queriesmock.NewMockOccupancyReadStore(ctrl)), cat, availability.NewCalculator(30)).ListServices(ctx)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, queries.ServiceView{ID: svc.ID, Name: "Basic Wash", DurationMin: 45, PriceCents: 1500, Capacity: 2}, views[0])
}
