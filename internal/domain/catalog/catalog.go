// Package catalog holds the read-only inputs of the booking engine: the
// services on offer, the weekly opening hours and the holiday calendar.
package catalog

import (
	"errors"
	"time"

	"carwash-booking/internal/pkg/calendar"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errors.New("service duration must be positive")
	ErrInvalidCapacity = errors.New("service capacity must be at least 1")
	ErrInvalidHours    = errors.New("closing time must be after opening time")
	ErrInvalidBreak    = errors.New("break must lie within opening hours")
)

type Service struct {
	ID          uuid.UUID
	Name        string
	DurationMin int
	PriceCents  int64
	Capacity    int
	Active      bool
}

func NewService(id uuid.UUID, name string, durationMin int, priceCents int64, capacity int, active bool) (*Service, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Service{
		ID:          id,
		Name:        name,
		DurationMin: durationMin,
		PriceCents:  priceCents,
		Capacity:    capacity,
		Active:      active,
	}, nil
}

// SlotFor is the interval a booking of this service starting at start occupies.
func (s *Service) SlotFor(start calendar.TimeOfDay) calendar.Interval {
	return calendar.NewInterval(start, s.DurationMin)
}

type BusinessHours struct {
	Weekday time.Weekday
	IsOpen  bool
	Open    calendar.TimeOfDay
	Close   calendar.TimeOfDay
	Break   *calendar.Interval
}

func NewBusinessHours(weekday time.Weekday, isOpen bool, open, closing calendar.TimeOfDay, brk *calendar.Interval) (*BusinessHours, error) {
	bh := &BusinessHours{Weekday: weekday, IsOpen: isOpen, Open: open, Close: closing, Break: brk}
	if !isOpen {
		return bh, nil
	}
	if closing <= open {
		return nil, ErrInvalidHours
	}
	if brk != nil && (brk.IsEmpty() || !brk.Within(bh.Window())) {
		return nil, ErrInvalidBreak
	}
	return bh, nil
}

// Closed is the value used for weekdays without a configured row.
func Closed(weekday time.Weekday) *BusinessHours {
	return &BusinessHours{Weekday: weekday}
}

func (h *BusinessHours) Window() calendar.Interval {
	return calendar.Interval{Start: h.Open, End: h.Close}
}

type Holiday struct {
	Date calendar.Date
	Name string
}
