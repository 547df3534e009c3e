package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/domain/catalog"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/clock"
	"carwash-booking/internal/pkg/config"
	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/shared"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ServiceID     string `validate:"required,uuid"`
	Date          string `validate:"required,datetime=2006-01-02"`
	StartTime     string `validate:"required,datetime=15:04"`
	CustomerName  string `validate:"required,max=100"`
	CustomerEmail string `validate:"required,email,max=254"`
	CustomerPhone string `validate:"omitempty,max=32"`
	Notes         string `validate:"max=500"`
}

type RescheduleBookingInput struct {
	Date      string `validate:"required,datetime=2006-01-02"`
	StartTime string `validate:"required,datetime=15:04"`
}

// BookingResult describes the booking as it stands after a command.
type BookingResult struct {
	BookingID        uuid.UUID
	ServiceID        uuid.UUID
	ConfirmationCode string
	Date             calendar.Date
	Slot             calendar.Interval
	Status           booking.Status
	PaymentStatus    booking.PaymentStatus
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (*BookingResult, error)
	CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*BookingResult, error)
	CompleteBooking(ctx context.Context, id uuid.UUID) (*BookingResult, error)
	RescheduleBooking(ctx context.Context, id uuid.UUID, in RescheduleBookingInput) (*BookingResult, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	uow         shared.UnitOfWork
	locker      shared.SlotLocker
	invalidator shared.AvailabilityInvalidator
	notifier    shared.BookingNotifier
	calculator  *availability.Calculator
	codes       booking.CodeGenerator
	clock       clock.Clock
	cfg         config.BookingConfig
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	locker shared.SlotLocker,
	invalidator shared.AvailabilityInvalidator,
	notifier shared.BookingNotifier,
	calculator *availability.Calculator,
	codes booking.CodeGenerator,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:         uow,
		locker:      locker,
		invalidator: invalidator,
		notifier:    notifier,
		calculator:  calculator,
		codes:       codes,
		clock:       clk,
		cfg:         cfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// CreateBooking reserves a slot. The slot lock keeps concurrent attempts
// out of the transaction; the serializable transaction is what guarantees
// the capacity invariant.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	serviceID, date, start, err := parseSlotRequest(in.ServiceID, in.Date, in.StartTime)
	if err != nil {
		return nil, err
	}
	customer, err := booking.NewCustomer(in.CustomerName, in.CustomerEmail, in.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := uc.rejectPast(date, start); err != nil {
		return nil, err
	}

	key := shared.SlotLockKey(date, start)
	logger := uc.logger.With(
		"attempt_id", uuid.NewString(),
		"slot_key", key,
		"service_id", serviceID.String())

	var created *booking.Booking
	err = uc.withSlotLock(ctx, key, logger, func(ctx context.Context) error {
		return uc.withinTimeout(ctx, func(ctx context.Context, tx shared.Tx) error {
			svc, err := uc.bookableService(ctx, tx, serviceID)
			if err != nil {
				return err
			}
			slot, err := uc.verifySlot(ctx, tx, svc, date, start, nil)
			if err != nil {
				return err
			}

			code, err := booking.GenerateUniqueCode(ctx, uc.codes, func(ctx context.Context, code string) (bool, error) {
				return tx.Bookings().CodeExists(ctx, tx.DB(), code)
			}, uc.cfg.CodeAttempts)
			if err != nil {
				if errors.Is(err, booking.ErrCodeGenerationExhausted) {
					return errs.Mark(err, errs.ErrConfirmationCodeGeneration)
				}
				return err
			}

			b, err := booking.NewBooking(svc, date, slot.Start, customer, code, in.Notes, uc.clock.Now())
			if err != nil {
				return markDomainErr(err)
			}
			if err := tx.Bookings().Insert(ctx, tx.DB(), b); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return errs.Mark(err, errs.ErrConfirmationCodeGeneration)
				}
				return err
			}
			created = b
			return nil
		})
	})
	if err != nil {
		return nil, uc.fail(ctx, logger, "create booking", err)
	}

	logger.InfoContext(ctx, "booking created",
		"booking_id", created.ID().String(),
		"confirmation_code", created.ConfirmationCode())

	uc.invalidator.InvalidateAvailability(ctx, created.ServiceID(), created.Date())
	uc.publish(ctx, shared.EventBookingCreated, created)
	return toResult(created), nil
}

func (uc *bookingUseCaseImpl) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (*BookingResult, error) {
	next := booking.Status(status)
	if !next.IsValid() {
		return nil, errs.Mark(errs.Newf("unknown booking status %q", status), errs.ErrValidation)
	}
	event := shared.EventBookingStatusChanged
	if next == booking.StatusCancelled {
		event = shared.EventBookingCancelled
	}
	return uc.mutate(ctx, id, event, true, func(b *booking.Booking, now time.Time) error {
		return b.TransitionTo(next, now)
	})
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*BookingResult, error) {
	return uc.mutate(ctx, id, shared.EventBookingCancelled, true, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(reason, now)
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, id uuid.UUID) (*BookingResult, error) {
	return uc.UpdateBookingStatus(ctx, id, booking.StatusCompleted.String())
}

// UpdatePaymentStatus does not touch the slot, so the availability cache
// is left alone.
func (uc *bookingUseCaseImpl) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*BookingResult, error) {
	next := booking.PaymentStatus(status)
	if !next.IsValid() {
		return nil, errs.Mark(errs.Newf("unknown payment status %q", status), errs.ErrValidation)
	}
	return uc.mutate(ctx, id, shared.EventPaymentUpdated, false, func(b *booking.Booking, now time.Time) error {
		return b.UpdatePayment(next, now)
	})
}

// RescheduleBooking moves a booking under the new slot's lock. The booking
// does not count against its own new slot.
func (uc *bookingUseCaseImpl) RescheduleBooking(ctx context.Context, id uuid.UUID, in RescheduleBookingInput) (*BookingResult, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	start, err := calendar.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := uc.rejectPast(date, start); err != nil {
		return nil, err
	}

	key := shared.SlotLockKey(date, start)
	logger := uc.logger.With(
		"attempt_id", uuid.NewString(),
		"slot_key", key,
		"booking_id", id.String())

	var (
		moved   *booking.Booking
		oldDate calendar.Date
	)
	err = uc.withSlotLock(ctx, key, logger, func(ctx context.Context) error {
		return uc.withinTimeout(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, err := uc.lockBooking(ctx, tx, id)
			if err != nil {
				return err
			}
			if !b.Status().Reschedulable() {
				return errs.Mark(errs.Newf("booking is %s", b.Status()), errs.ErrInvalidStatusTransition)
			}
			svc, err := uc.bookableService(ctx, tx, b.ServiceID())
			if err != nil {
				return err
			}
			bookingID := b.ID()
			if _, err := uc.verifySlot(ctx, tx, svc, date, start, &bookingID); err != nil {
				return err
			}

			oldDate = b.Date()
			if err := b.Reschedule(svc, date, start, uc.clock.Now()); err != nil {
				return markDomainErr(err)
			}
			if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
				return err
			}
			moved = b
			return nil
		})
	})
	if err != nil {
		return nil, uc.fail(ctx, logger, "reschedule booking", err)
	}

	logger.InfoContext(ctx, "booking rescheduled",
		"from", oldDate.String(),
		"to", date.String()+" "+start.String())

	uc.invalidator.InvalidateAvailability(ctx, moved.ServiceID(), oldDate, moved.Date())
	uc.publish(ctx, shared.EventBookingRescheduled, moved)
	return toResult(moved), nil
}

// mutate applies change to a row-locked booking. No slot lock is needed:
// these changes never consume capacity.
func (uc *bookingUseCaseImpl) mutate(
	ctx context.Context,
	id uuid.UUID,
	event shared.BookingEventType,
	invalidates bool,
	change func(b *booking.Booking, now time.Time) error,
) (*BookingResult, error) {
	logger := uc.logger.With("booking_id", id.String(), "event", string(event))

	var updated *booking.Booking
	err := uc.withinTimeout(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := uc.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := change(b, uc.clock.Now()); err != nil {
			return markDomainErr(err)
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, logger, "update booking", err)
	}

	logger.InfoContext(ctx, "booking updated",
		"status", updated.Status().String(),
		"payment_status", updated.PaymentStatus().String())

	if invalidates {
		uc.invalidator.InvalidateAvailability(ctx, updated.ServiceID(), updated.Date())
	}
	uc.publish(ctx, event, updated)
	return toResult(updated), nil
}

func (uc *bookingUseCaseImpl) bookableService(ctx context.Context, tx shared.Tx, id uuid.UUID) (*catalog.Service, error) {
	svc, err := tx.Reads().ServiceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrServiceNotFound)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, errs.ErrServiceInactive
	}
	return svc, nil
}

func (uc *bookingUseCaseImpl) lockBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().LockByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, err
	}
	return b, nil
}

// verifySlot re-derives availability inside the transaction: the start must
// be one the day actually offers, and the row-locked overlapping bookings
// must leave capacity.
func (uc *bookingUseCaseImpl) verifySlot(
	ctx context.Context,
	tx shared.Tx,
	svc *catalog.Service,
	date calendar.Date,
	start calendar.TimeOfDay,
	excludeID *uuid.UUID,
) (calendar.Interval, error) {
	holiday, err := tx.Reads().HolidayOn(ctx, date)
	if err != nil {
		return calendar.Interval{}, err
	}
	hours, err := tx.Reads().BusinessHoursFor(ctx, date.Weekday())
	if err != nil {
		return calendar.Interval{}, err
	}
	if _, offered := availability.Find(uc.calculator.ComputeSlots(svc, hours, holiday, nil), start); !offered {
		return calendar.Interval{}, errs.Mark(
			errs.Newf("%s %s is not a bookable start time", date, start),
			errs.ErrInvalidTimeSlot)
	}

	slot := svc.SlotFor(start)
	taken, err := tx.Bookings().LockOverlapping(ctx, tx.DB(), svc.ID, date, slot, excludeID)
	if err != nil {
		return calendar.Interval{}, err
	}
	if taken >= svc.Capacity {
		return calendar.Interval{}, errs.ErrTimeSlotUnavailable
	}
	return slot, nil
}

func (uc *bookingUseCaseImpl) rejectPast(date calendar.Date, start calendar.TimeOfDay) error {
	if uc.cfg.AllowPastBooking {
		return nil
	}
	if date.At(start, uc.cfg.Location()).Before(uc.clock.Now()) {
		return errs.Mark(errs.Newf("%s %s is in the past", date, start), errs.ErrValidation)
	}
	return nil
}

func (uc *bookingUseCaseImpl) publish(ctx context.Context, event shared.BookingEventType, b *booking.Booking) {
	err := uc.notifier.Notify(ctx, shared.BookingEvent{
		Type:             event,
		BookingID:        b.ID(),
		ServiceID:        b.ServiceID(),
		Date:             b.Date(),
		StartTime:        b.Slot().Start,
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		ConfirmationCode: b.ConfirmationCode(),
		CustomerEmail:    b.Customer().Email,
		OccurredAt:       uc.clock.Now(),
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to hand off booking event",
			"event", string(event),
			"booking_id", b.ID().String(),
			"error", err.Error())
	}
}

// fail logs infrastructure failures with their cause. Expected outcomes
// (conflicts, validation, not found) are returned as they are.
func (uc *bookingUseCaseImpl) fail(ctx context.Context, logger *slog.Logger, op string, err error) error {
	switch {
	case errs.IsConflict(err):
		logger.InfoContext(ctx, op+" rejected: slot conflict", "error", err.Error())
		return err
	case errs.IsValidation(err), errs.IsAny(err,
		errs.ErrBookingNotFound,
		errs.ErrServiceNotFound,
		errs.ErrInvalidStatusTransition,
		errs.ErrInvalidPaymentTransition):
		return err
	case errs.IsAny(err, errs.ErrTransactionTimeout, errs.ErrConfirmationCodeGeneration):
		logger.ErrorContext(ctx, op+" failed", "error", err.Error())
		return err
	default:
		logger.ErrorContext(ctx, op+" failed", "error", err.Error())
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func markDomainErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrNotReschedulable):
		return errs.Mark(err, errs.ErrInvalidStatusTransition)
	case errors.Is(err, booking.ErrInvalidPaymentTransition):
		return errs.Mark(err, errs.ErrInvalidPaymentTransition)
	case errors.Is(err, booking.ErrServiceInactive):
		return errs.Mark(err, errs.ErrServiceInactive)
	case errors.Is(err, booking.ErrSlotOutsideDay):
		return errs.Mark(err, errs.ErrInvalidTimeSlot)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func parseSlotRequest(serviceID, date, start string) (uuid.UUID, calendar.Date, calendar.TimeOfDay, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return uuid.Nil, calendar.Date{}, 0, errs.Mark(err, errs.ErrValidation)
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return uuid.Nil, calendar.Date{}, 0, errs.Mark(err, errs.ErrValidation)
	}
	t, err := calendar.ParseTimeOfDay(start)
	if err != nil {
		return uuid.Nil, calendar.Date{}, 0, errs.Mark(err, errs.ErrValidation)
	}
	return id, d, t, nil
}

func toResult(b *booking.Booking) *BookingResult {
	return &BookingResult{
		BookingID:        b.ID(),
		ServiceID:        b.ServiceID(),
		ConfirmationCode: b.ConfirmationCode(),
		Date:             b.Date(),
		Slot:             b.Slot(),
		Status:           b.Status(),
		PaymentStatus:    b.PaymentStatus(),
	}
}
