//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/infra"
	"carwash-booking/internal/infra/repository"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/pgconv"
	"carwash-booking/tests/common/builder"
	repositorymock "carwash-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// LockOverlapping Tests
// =============================================================================

func TestRepository_LockOverlapping(t *testing.T) {
	ctx := context.Background()
	serviceID := uuid.New()
	date := calendar.NewDate(2026, 10, 20)
	slot := calendar.NewInterval(calendar.MustTimeOfDay("10:00"), 30)
	excludeID := uuid.New()

	testCases := []struct {
		name          string
		exclude       *uuid.UUID
		setupMock     func(*repositorymock.MockBookingWriteQueries, sqlc.DBTX)
		expectedCount int
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: counts locked rows",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().LockOverlappingBookings(ctx, tx, sqlc.LockOverlappingBookingsParams{
					ServiceID:   serviceID,
					BookingDate: pgconv.DateToPgtype(date),
					EndTime:     pgconv.TimeOfDayToPgtype(slot.End),
					StartTime:   pgconv.TimeOfDayToPgtype(slot.Start),
				}).Return([]sqlc.LockOverlappingBookingsRow{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
			},
			expectedCount: 2,
		},
		{
			name:    "success: excluded booking is passed through",
			exclude: &excludeID,
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().LockOverlappingBookings(ctx, tx, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ sqlc.DBTX, arg sqlc.LockOverlappingBookingsParams) ([]sqlc.LockOverlappingBookingsRow, error) {
						assert.True(t, arg.ExcludeID.Valid)
						assert.Equal(t, excludeID, uuid.UUID(arg.ExcludeID.Bytes))
						return nil, nil
					})
			},
			expectedCount: 0,
		},
		{
			name: "error: serialization failure keeps pg error in chain",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().LockOverlappingBookings(ctx, tx, gomock.Any()).
					Return(nil, &pgconn.PgError{Code: "40001", Message: "could not serialize access"})
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries)
			tc.setupMock(mockQueries, mockDB)

			count, err := repo.LockOverlapping(ctx, mockDB, serviceID, date, slot, tc.exclude)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				var pgErr *pgconn.PgError
				assert.True(t, errors.As(err, &pgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCount, count)
		})
	}
}

// =============================================================================
// Insert Tests
// =============================================================================

func TestRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, *booking.Booking, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error) {
						assert.Equal(t, b.ID(), arg.ID)
						assert.Equal(t, "PENDING", arg.Status)
						assert.Equal(t, "PENDING", arg.PaymentStatus)
						assert.Equal(t, b.ConfirmationCode(), arg.ConfirmationCode)
						assert.Equal(t, b.Slot().End, pgconv.TimeOfDayFromPgtype(arg.EndTime))
						return arg.ID, nil
					})
			},
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, _ *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(uuid.Nil, errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: duplicate confirmation code",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, _ *booking.Booking, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(uuid.Nil, dup)
			},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name: "error: unknown service",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, _ *booking.Booking, tx sqlc.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(uuid.Nil, fk)
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries)

			domainBooking, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)
			tc.setupMock(mockQueries, domainBooking, mockDB)

			actualError := repo.Insert(ctx, mockDB, domainBooking)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// LockByID / Update Tests
// =============================================================================

func TestRepository_LockByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row is mapped back to the aggregate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusConfirmed
			b.CustomerPhone = ""
		})
		row := bb.BuildInfra()
		mockQueries.EXPECT().LockBookingByID(ctx, mockDB, row.ID).Return(row, nil)

		actual, err := repository.NewBookingRepository(mockQueries).LockByID(ctx, mockDB, row.ID)

		require.NoError(t, err)
		assert.Equal(t, row.ID, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.True(t, actual.Date().Equal(bb.Date))
		assert.Equal(t, calendar.NewInterval(bb.StartTime, bb.DurationMin), actual.Slot())
		assert.Empty(t, actual.Customer().Phone)
		assert.Nil(t, actual.CancelledAt())
	})

	t.Run("error: missing booking is NOT_FOUND", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().LockBookingByID(ctx, mockDB, gomock.Any()).Return(sqlc.Bookings{}, pgx.ErrNoRows)

		_, err := repository.NewBookingRepository(mockQueries).LockByID(ctx, mockDB, uuid.New())

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		rows       int64
		dbErr      error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: one row updated", rows: 1},
		{name: "error: no row matched", rows: 0, expectKind: infra.KindNotFound},
		{name: "error: database error occurs", dbErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			b := builder.NewBookingBuilder().BuildReconstructed()
			mockQueries.EXPECT().UpdateBooking(ctx, mockDB, gomock.Any()).Return(tc.rows, tc.dbErr)

			err := repository.NewBookingRepository(mockQueries).Update(ctx, mockDB, b)

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}

// =============================================================================
// Test Helper Functions
// =============================================================================

// mockDBTX is a mock implementation of sqlc.DBTX interface
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
