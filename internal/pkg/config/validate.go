package config

import (
	"slices"
	"time"

	"carwash-booking/internal/pkg/errs"
)

var (
	cacheDrivers  = []string{"redis", "memory", "none"}
	lockDrivers   = []string{"redis", "memory"}
	notifyDrivers = []string{"log", "amqp", "kafka", "asynq"}
)

// Validate rejects settings that would only fail later, mid-request.
func (c Config) Validate() error {
	if !slices.Contains(cacheDrivers, c.Cache.Driver) {
		return errs.Newf("CACHE_DRIVER must be one of %v, got %q", cacheDrivers, c.Cache.Driver)
	}
	if !slices.Contains(lockDrivers, c.Booking.LockDriver) {
		return errs.Newf("BOOKING_LOCK_DRIVER must be one of %v, got %q", lockDrivers, c.Booking.LockDriver)
	}
	if !slices.Contains(notifyDrivers, c.Notify.Driver) {
		return errs.Newf("NOTIFY_DRIVER must be one of %v, got %q", notifyDrivers, c.Notify.Driver)
	}
	if c.Booking.SlotStepMinutes <= 0 || c.Booking.SlotStepMinutes > 24*60 {
		return errs.Newf("BOOKING_SLOT_STEP_MINUTES out of range: %d", c.Booking.SlotStepMinutes)
	}
	if c.Booking.CodeAttempts < 1 {
		return errs.Newf("BOOKING_CODE_ATTEMPTS must be at least 1, got %d", c.Booking.CodeAttempts)
	}
	// The lock must outlive the transaction it guards, retries included.
	if c.Booking.LockTTL <= c.Booking.TxTimeout {
		return errs.Newf("BOOKING_LOCK_TTL (%s) must exceed BOOKING_TX_TIMEOUT (%s)", c.Booking.LockTTL, c.Booking.TxTimeout)
	}
	if c.Notify.MaxInFlight < 1 {
		return errs.Newf("NOTIFY_MAX_IN_FLIGHT must be at least 1, got %d", c.Notify.MaxInFlight)
	}
	if _, err := time.LoadLocation(c.Booking.TimeZone); err != nil {
		return errs.Wrap(err, "BOOKING_TIMEZONE")
	}
	return nil
}
