package components

import (
	"log/slog"

	"carwash-booking/internal/infra/cache"
	"carwash-booking/internal/infra/lock"
	"carwash-booking/internal/infra/readstore"
	sqlc "carwash-booking/internal/infra/sqlc/generated"
	"carwash-booking/internal/infra/uow"
	"carwash-booking/internal/pkg/config"
	"carwash-booking/internal/usecase/queries"
	"carwash-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	coordinationModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Catalog
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CatalogReadQueries)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Availability reads share one read-only transaction
		fx.Annotate(
			readstore.NewSnapshot,
			fx.As(new(queries.SnapshotReader)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork: the booking repository is opened per transaction
		uow.NewPostgresUoW,
	),
)

// Lock and cache stores sit beside the ledger; both only ever degrade.
var coordinationModule = fx.Module("persistence/coordination",
	fx.Provide(
		NewSlotLocker,
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(queries.AvailabilityCache)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewSlotLocker(cfg config.Config, rdb redis.UniversalClient, logger *slog.Logger) shared.SlotLocker {
	if cfg.Booking.LockDriver == "memory" {
		logger.Warn("using in-process slot locks; only safe with a single instance")
		return lock.NewMemoryLocker()
	}
	return lock.NewRedisLocker(rdb, cfg.Cache.Prefix)
}

func NewAvailabilityCache(cfg config.Config, rdb redis.UniversalClient, logger *slog.Logger) *cache.Cache {
	var store cache.Store
	switch cfg.Cache.Driver {
	case "memory":
		store = cache.NewMemoryStore()
	case "none":
		store = cache.NewNopStore()
	default:
		store = cache.NewRedisStore(rdb)
	}
	logger.Info("availability cache configured", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.AvailabilityTTL.String())
	return cache.New(store, cfg.Cache.Prefix, logger)
}
