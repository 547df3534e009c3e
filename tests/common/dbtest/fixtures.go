//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool or an open transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DBLike = (*pgxpool.Pool)(nil)
	_ DBLike = (pgx.Tx)(nil)
)

func CreateTestService(t *testing.T, db DBLike, name string, durationMin, capacity int) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, name, duration_minutes, price_cents, capacity, is_active) VALUES ($1, $2, $3, $4, $5, true)",
		serviceID, name, durationMin, 2500, capacity)
	require.NoError(t, err)

	return serviceID
}

func DeactivateService(t *testing.T, db DBLike, serviceID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE services SET is_active = false WHERE id = $1", serviceID)
	require.NoError(t, err)
}

// SetBusinessHours overwrites one weekday. Empty breakStart means no break.
func SetBusinessHours(t *testing.T, db DBLike, weekday time.Weekday, open, close, breakStart, breakEnd string) {
	t.Helper()

	var bs, be any
	if breakStart != "" {
		bs, be = breakStart, breakEnd
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO business_hours (weekday, is_open, open_time, close_time, break_start, break_end)
		VALUES ($1, true, $2, $3, $4, $5)
		ON CONFLICT (weekday) DO UPDATE SET
		    is_open = true, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time,
		    break_start = EXCLUDED.break_start, break_end = EXCLUDED.break_end`,
		int16(weekday), open, close, bs, be)
	require.NoError(t, err)
}

func CreateTestHoliday(t *testing.T, db DBLike, date, name string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO holidays (holiday_date, name) VALUES ($1, $2) ON CONFLICT (holiday_date) DO NOTHING", date, name)
	require.NoError(t, err)
}

func CountOccupying(t *testing.T, db DBLike, serviceID uuid.UUID, date, start string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `
		SELECT count(*) FROM bookings
		WHERE service_id = $1 AND booking_date = $2 AND start_time = $3
		  AND status NOT IN ('CANCELLED', 'NO_SHOW')`, serviceID, date, start).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the default week: Mon-Sat 08:00-18:00 with a lunch break, Sunday closed
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO business_hours (weekday, is_open, open_time, close_time, break_start, break_end) VALUES
		    (0, false, '00:00', '00:00', NULL, NULL),
		    (1, true, '08:00', '18:00', '12:00', '13:00'),
		    (2, true, '08:00', '18:00', '12:00', '13:00'),
		    (3, true, '08:00', '18:00', '12:00', '13:00'),
		    (4, true, '08:00', '18:00', '12:00', '13:00'),
		    (5, true, '08:00', '18:00', '12:00', '13:00'),
		    (6, true, '09:00', '14:00', NULL, NULL)
		ON CONFLICT (weekday) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
