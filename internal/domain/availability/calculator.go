package availability

import (
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/pkg/calendar"
)

const DefaultStepMinutes = 30

type TimeSlot struct {
	Time              calendar.TimeOfDay `json:"time"`
	Available         bool               `json:"available"`
	CapacityRemaining int                `json:"capacityRemaining"`
}

// Occupancy is an existing booking as seen by the calculator. Occupies is
// false for bookings whose status no longer holds the slot.
type Occupancy struct {
	Slot     calendar.Interval
	Occupies bool
}

type Calculator struct {
	stepMin int
}

func NewCalculator(stepMin int) *Calculator {
	if stepMin <= 0 {
		stepMin = DefaultStepMinutes
	}
	return &Calculator{stepMin: stepMin}
}

// ComputeSlots returns the ordered candidate start times for svc on a day.
// The result depends only on the arguments; callers may cache it.
func (c *Calculator) ComputeSlots(
	svc *catalog.Service,
	hours *catalog.BusinessHours,
	holiday *catalog.Holiday,
	existing []Occupancy,
) []TimeSlot {
	if holiday != nil || hours == nil || !hours.IsOpen {
		return []TimeSlot{}
	}

	window := hours.Window()
	slots := make([]TimeSlot, 0, window.Minutes()/c.stepMin)

	for start := hours.Open; start < hours.Close; start = start.AddMinutes(c.stepMin) {
		candidate := svc.SlotFor(start)
		if !candidate.Within(window) {
			continue
		}
		if hours.Break != nil && candidate.Overlaps(*hours.Break) {
			continue
		}

		taken := CountOverlapping(candidate, existing)
		remaining := svc.Capacity - taken
		if remaining < 0 {
			remaining = 0
		}
		slots = append(slots, TimeSlot{
			Time:              start,
			Available:         taken < svc.Capacity,
			CapacityRemaining: remaining,
		})
	}

	return slots
}

// CountOverlapping counts occupying bookings that intersect candidate.
func CountOverlapping(candidate calendar.Interval, existing []Occupancy) int {
	n := 0
	for _, o := range existing {
		if o.Occupies && candidate.Overlaps(o.Slot) {
			n++
		}
	}
	return n
}

// Find returns the slot starting at t, if the day offers one.
func Find(slots []TimeSlot, t calendar.TimeOfDay) (TimeSlot, bool) {
	for _, s := range slots {
		if s.Time == t {
			return s, true
		}
	}
	return TimeSlot{}, false
}
