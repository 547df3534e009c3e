package components

import (
	"context"
	"log/slog"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/pkg/clock"
	"carwash-booking/internal/pkg/config"
	"carwash-booking/internal/usecase/commands"
	"carwash-booking/internal/usecase/queries"
	"carwash-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	fx.Invoke(startWarmup),
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) clock.Clock {
		return clock.NewRealClock(cfg.Booking.Location())
	},
	func(cfg config.Config) *availability.Calculator {
		return availability.NewCalculator(cfg.Booking.SlotStepMinutes)
	},
	fx.Annotate(
		booking.NewRandomCodeGenerator,
		fx.As(new(booking.CodeGenerator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			u shared.UnitOfWork,
			locker shared.SlotLocker,
			invalidator shared.AvailabilityInvalidator,
			notifier shared.BookingNotifier,
			calc *availability.Calculator,
			codes booking.CodeGenerator,
			clk clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) commands.BookingCommands {
			return commands.NewBookingUseCase(u, locker, invalidator, notifier, calc, codes, clk, cfg.Booking, logger)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		fx.Annotate(
			NewAvailabilityQueries,
			fx.As(new(queries.AvailabilityQueries)),
			fx.As(new(shared.AvailabilityInvalidator)),
		),
		NewWarmer,
	),
)

// NewAvailabilityQueries serves availability through the cache; the same
// value invalidates it after writes.
func NewAvailabilityQueries(
	snapshot queries.SnapshotReader,
	catalog queries.CatalogReadStore,
	calc *availability.Calculator,
	c queries.AvailabilityCache,
	cfg config.Config,
) *queries.CachedAvailabilityQueries {
	inner := queries.NewAvailabilityQueries(snapshot, catalog, calc)
	return queries.NewCachedAvailabilityQueries(inner, c, cfg.Cache.AvailabilityTTL, cfg.Cache.RefreshThreshold)
}

func NewWarmer(catalog queries.CatalogReadStore, q queries.AvailabilityQueries, clk clock.Clock, cfg config.Config, logger *slog.Logger) *queries.Warmer {
	return queries.NewWarmer(catalog, q, clk, cfg.Cache.WarmupDays, cfg.Cache.WarmupRPS, logger)
}

// startWarmup runs in the background so a slow database never holds up
// startup; stopping the app cancels it.
func startWarmup(lc fx.Lifecycle, w *queries.Warmer, cfg config.Config, logger *slog.Logger) {
	if cfg.Cache.WarmupDays <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				n, err := w.Warm(ctx)
				if err != nil {
					logger.Warn("availability warmup stopped early", "warmed", n, "error", err.Error())
					return
				}
				logger.Info("availability warmup finished", "warmed", n)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
