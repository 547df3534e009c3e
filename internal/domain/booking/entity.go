package booking

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/pkg/calendar"

	"github.com/google/uuid"
)

const (
	MaxNameLength   = 100
	MaxNotesLength  = 500
	MaxReasonLength = 500
)

var (
	ErrInvalidTransition        = errors.New("invalid booking status transition")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
	ErrNotReschedulable         = errors.New("booking can no longer be rescheduled")
	ErrInvalidCustomer          = errors.New("invalid customer contact")
	ErrServiceInactive          = errors.New("service is not active")
	ErrSlotOutsideDay           = errors.New("slot does not fit in a single day")
	ErrNotesTooLong             = errors.New("notes too long")
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return Customer{}, fmt.Errorf("%w: name", ErrInvalidCustomer)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Customer{}, fmt.Errorf("%w: email", ErrInvalidCustomer)
	}
	return Customer{Name: name, Email: email, Phone: phone}, nil
}

type Booking struct {
	id                 uuid.UUID
	serviceID          uuid.UUID
	date               calendar.Date
	slot               calendar.Interval
	status             Status
	paymentStatus      PaymentStatus
	customer           Customer
	confirmationCode   string
	notes              string
	cancellationReason string
	cancelledAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking builds a PENDING booking for svc. The caller supplies a
// confirmation code already checked for uniqueness.
func NewBooking(
	svc *catalog.Service,
	date calendar.Date,
	start calendar.TimeOfDay,
	customer Customer,
	confirmationCode string,
	notes string,
	now time.Time,
) (*Booking, error) {
	if !svc.Active {
		return nil, ErrServiceInactive
	}
	slot := svc.SlotFor(start)
	if slot.End > calendar.MinutesPerDay {
		return nil, ErrSlotOutsideDay
	}
	if !IsValidConfirmationCode(confirmationCode) {
		return nil, ErrInvalidConfirmationCode
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}

	return &Booking{
		id:               uuid.New(),
		serviceID:        svc.ID,
		date:             date,
		slot:             slot,
		status:           StatusPending,
		paymentStatus:    PaymentPending,
		customer:         customer,
		confirmationCode: confirmationCode,
		notes:            notes,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func Reconstruct(
	id, serviceID uuid.UUID,
	date calendar.Date,
	slot calendar.Interval,
	status Status,
	paymentStatus PaymentStatus,
	customer Customer,
	confirmationCode, notes, cancellationReason string,
	cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		serviceID:          serviceID,
		date:               date,
		slot:               slot,
		status:             status,
		paymentStatus:      paymentStatus,
		customer:           customer,
		confirmationCode:   confirmationCode,
		notes:              notes,
		cancellationReason: cancellationReason,
		cancelledAt:        cancelledAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// TransitionTo leaves the booking untouched when the move is not allowed.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	reason = truncateRunes(reason, MaxReasonLength)
	if err := b.TransitionTo(StatusCancelled, now); err != nil {
		return err
	}
	b.cancellationReason = reason
	cancelledAt := now
	b.cancelledAt = &cancelledAt
	return nil
}

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func (b *Booking) Reschedule(svc *catalog.Service, date calendar.Date, start calendar.TimeOfDay, now time.Time) error {
	if !b.status.Reschedulable() {
		return fmt.Errorf("%w: status %s", ErrNotReschedulable, b.status)
	}
	slot := svc.SlotFor(start)
	if slot.End > calendar.MinutesPerDay {
		return ErrSlotOutsideDay
	}
	b.date = date
	b.slot = slot
	b.updatedAt = now
	return nil
}

func (b *Booking) UpdatePayment(next PaymentStatus, now time.Time) error {
	if !b.paymentStatus.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, b.paymentStatus, next)
	}
	b.paymentStatus = next
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) ServiceID() uuid.UUID         { return b.serviceID }
func (b *Booking) Date() calendar.Date          { return b.date }
func (b *Booking) Slot() calendar.Interval      { return b.slot }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Customer() Customer           { return b.customer }
func (b *Booking) ConfirmationCode() string     { return b.confirmationCode }
func (b *Booking) Notes() string                { return b.notes }
func (b *Booking) CancellationReason() string   { return b.cancellationReason }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
