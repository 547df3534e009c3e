package shared

import (
	"context"
	"time"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/domain/catalog"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Serializable transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads are catalog reads made on the transaction's connection, so
// the write path decides against the same snapshot it writes to.
type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	BusinessHoursFor(ctx context.Context, weekday time.Weekday) (*catalog.BusinessHours, error)
	HolidayOn(ctx context.Context, date calendar.Date) (*catalog.Holiday, error)
}

type BookingRepository interface {
	// LockOverlapping row-locks every slot-holding booking of the service on
	// date that overlaps slot and returns how many there are. excludeID keeps
	// a booking being rescheduled from counting against itself.
	LockOverlapping(ctx context.Context, db sqlc.DBTX, serviceID uuid.UUID, date calendar.Date, slot calendar.Interval, excludeID *uuid.UUID) (int, error)
	CodeExists(ctx context.Context, db sqlc.DBTX, code string) (bool, error)
	Insert(ctx context.Context, db sqlc.DBTX, b *booking.Booking) error
	LockByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, db sqlc.DBTX, b *booking.Booking) error
}
