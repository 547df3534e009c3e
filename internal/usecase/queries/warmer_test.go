//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/clock"
	"carwash-booking/internal/usecase/queries"
	queriesmock "carwash-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWarmer_Warm(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cat := queriesmock.NewMockCatalogReadStore(ctrl)
	inner := queriesmock.NewMockAvailabilityQueries(ctrl)
	clk := clock.NewMockClock(time.Date(2026, time.October, 20, 7, 0, 0, 0, time.UTC))

	a := newService(t, 30, 1, true)
	b := newService(t, 60, 2, true)
	cat.EXPECT().ActiveServices(gomock.Any()).Return([]*catalog.Service{a, b}, nil)

	inner.EXPECT().CheckAvailability(gomock.Any(), a.ID, gomock.Any()).Return(freeSlots("08:00"), nil).Times(3)
	inner.EXPECT().CheckAvailability(gomock.Any(), b.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, date calendar.Date) ([]availability.TimeSlot, error) {
			if date.Equal(tuesday.AddDays(1)) {
				return nil, errors.New("transient")
			}
			return freeSlots("08:00"), nil
		}).Times(3)

	w := queries.NewWarmer(cat, inner, clk, 3, 1000, discardLogger)
	n, err := w.Warm(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, n, "one failing entry is skipped")
}

func TestWarmer_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := queries.NewWarmer(queriesmock.NewMockCatalogReadStore(ctrl), queriesmock.NewMockAvailabilityQueries(ctrl), clock.NewMockClock(time.Now()), 0, 10, discardLogger)

	n, err := w.Warm(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
}
