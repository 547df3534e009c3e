//go:build unit

package availability_test

import (
	"testing"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/pkg/calendar"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = calendar.MustTimeOfDay

func newService(t *testing.T, durationMin, capacity int) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(uuid.New(), "Basic Wash", durationMin, 2500, capacity, true)
	require.NoError(t, err)
	return svc
}

func newHours(t *testing.T, open, closing string, brk *calendar.Interval) *catalog.BusinessHours {
	t.Helper()
	h, err := catalog.NewBusinessHours(time.Tuesday, true, at(open), at(closing), brk)
	require.NoError(t, err)
	return h
}

func occupying(start string, minutes int) availability.Occupancy {
	return availability.Occupancy{Slot: calendar.NewInterval(at(start), minutes), Occupies: true}
}

func TestComputeSlots(t *testing.T) {
	calc := availability.NewCalculator(30)

	t.Run("full open day with no bookings offers every half hour", func(t *testing.T) {
		svc := newService(t, 30, 1)
		hours := newHours(t, "08:00", "18:00", nil)

		slots := calc.ComputeSlots(svc, hours, nil, nil)

		require.Len(t, slots, 20)
		assert.Equal(t, at("08:00"), slots[0].Time)
		assert.Equal(t, at("17:30"), slots[19].Time)
		for _, s := range slots {
			assert.True(t, s.Available, "slot %s should be available", s.Time)
			assert.Equal(t, 1, s.CapacityRemaining)
		}
	})

	t.Run("holiday offers nothing", func(t *testing.T) {
		svc := newService(t, 30, 1)
		hours := newHours(t, "08:00", "18:00", nil)
		holiday := &catalog.Holiday{Date: calendar.NewDate(2026, time.December, 25), Name: "Christmas"}

		assert.Empty(t, calc.ComputeSlots(svc, hours, holiday, nil))
	})

	t.Run("closed day offers nothing", func(t *testing.T) {
		svc := newService(t, 30, 1)

		assert.Empty(t, calc.ComputeSlots(svc, catalog.Closed(time.Sunday), nil, nil))
		assert.Empty(t, calc.ComputeSlots(svc, nil, nil, nil))
	})

	t.Run("candidates running past closing are dropped", func(t *testing.T) {
		svc := newService(t, 90, 1)
		hours := newHours(t, "08:00", "10:00", nil)

		slots := calc.ComputeSlots(svc, hours, nil, nil)

		got := make([]calendar.TimeOfDay, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.Time)
		}
		want := []calendar.TimeOfDay{at("08:00"), at("08:30")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("slot times mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("candidates overlapping the break are dropped", func(t *testing.T) {
		svc := newService(t, 60, 1)
		brk := calendar.Interval{Start: at("12:00"), End: at("13:00")}
		hours := newHours(t, "10:00", "15:00", &brk)

		slots := calc.ComputeSlots(svc, hours, nil, nil)

		got := make([]calendar.TimeOfDay, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.Time)
		}
		// 11:00-12:00 touches the break without overlapping it.
		want := []calendar.TimeOfDay{at("10:00"), at("10:30"), at("11:00"), at("13:00"), at("13:30"), at("14:00")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("slot times mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("occupied slot is unavailable at capacity one", func(t *testing.T) {
		svc := newService(t, 60, 1)
		hours := newHours(t, "08:00", "12:00", nil)

		slots := calc.ComputeSlots(svc, hours, nil, []availability.Occupancy{occupying("09:00", 60)})

		want := map[calendar.TimeOfDay]bool{
			at("08:00"): true,
			at("08:30"): false, // [08:30,09:30) hits [09:00,10:00)
			at("09:00"): false,
			at("09:30"): false,
			at("10:00"): true,
			at("10:30"): true,
			at("11:00"): true,
		}
		require.Len(t, slots, len(want))
		for _, s := range slots {
			assert.Equal(t, want[s.Time], s.Available, "slot %s", s.Time)
		}
	})

	t.Run("capacity counts concurrent bookings", func(t *testing.T) {
		svc := newService(t, 30, 2)
		hours := newHours(t, "08:00", "09:00", nil)

		oneTaken := calc.ComputeSlots(svc, hours, nil, []availability.Occupancy{occupying("08:00", 30)})
		slot, ok := availability.Find(oneTaken, at("08:00"))
		require.True(t, ok)
		assert.True(t, slot.Available)
		assert.Equal(t, 1, slot.CapacityRemaining)

		bothTaken := calc.ComputeSlots(svc, hours, nil, []availability.Occupancy{occupying("08:00", 30), occupying("08:00", 30)})
		slot, ok = availability.Find(bothTaken, at("08:00"))
		require.True(t, ok)
		assert.False(t, slot.Available)
		assert.Equal(t, 0, slot.CapacityRemaining)
	})

	t.Run("released bookings do not count", func(t *testing.T) {
		svc := newService(t, 30, 1)
		hours := newHours(t, "08:00", "09:00", nil)
		released := availability.Occupancy{Slot: calendar.NewInterval(at("08:00"), 30), Occupies: false}

		slots := calc.ComputeSlots(svc, hours, nil, []availability.Occupancy{released})

		slot, ok := availability.Find(slots, at("08:00"))
		require.True(t, ok)
		assert.True(t, slot.Available)
	})

	t.Run("identical inputs yield identical output", func(t *testing.T) {
		svc := newService(t, 45, 1)
		hours := newHours(t, "08:00", "18:00", nil)
		existing := []availability.Occupancy{occupying("10:00", 45), occupying("15:30", 45)}

		first := calc.ComputeSlots(svc, hours, nil, existing)
		second := calc.ComputeSlots(svc, hours, nil, existing)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("non-deterministic output (-first +second):\n%s", diff)
		}
	})
}

func TestNewCalculator_DefaultsStep(t *testing.T) {
	svc := newService(t, 15, 1)
	hours := newHours(t, "08:00", "09:00", nil)

	defaulted := availability.NewCalculator(0).ComputeSlots(svc, hours, nil, nil)
	require.Len(t, defaulted, 60/availability.DefaultStepMinutes)
	assert.Equal(t, at("08:30"), defaulted[1].Time)

	quarter := availability.NewCalculator(15).ComputeSlots(svc, hours, nil, nil)
	require.Len(t, quarter, 4)
	assert.Equal(t, at("08:15"), quarter[1].Time)
}
