package queries

import (
	"context"
	"log/slog"

	"carwash-booking/internal/pkg/clock"
	"carwash-booking/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Warmer precomputes availability for the coming days so the first reader
// of a popular date does not pay for the computation.
type Warmer struct {
	catalog CatalogReadStore
	queries AvailabilityQueries
	clock   clock.Clock
	days    int
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewWarmer(catalog CatalogReadStore, queries AvailabilityQueries, clk clock.Clock, days int, rps float64, logger *slog.Logger) *Warmer {
	if rps <= 0 {
		rps = 20
	}
	return &Warmer{
		catalog: catalog,
		queries: queries,
		clock:   clk,
		days:    days,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// Warm returns the number of (service, date) entries computed. A failing
// entry is logged and skipped.
func (w *Warmer) Warm(ctx context.Context) (int, error) {
	if w.days <= 0 {
		return 0, nil
	}
	services, err := w.catalog.ActiveServices(ctx)
	if err != nil {
		return 0, errs.Wrap(err, "list services for warmup")
	}

	today := clock.Today(w.clock)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	warmed := make(chan struct{}, len(services)*w.days)
schedule:
	for _, svc := range services {
		for i := range w.days {
			date := today.AddDays(i)
			serviceID := svc.ID
			if err := w.limiter.Wait(ctx); err != nil {
				break schedule
			}
			g.Go(func() error {
				if _, err := w.queries.CheckAvailability(ctx, serviceID, date); err != nil {
					w.logger.WarnContext(ctx, "availability warmup failed",
						"service_id", serviceID.String(),
						"date", date.String(),
						"error", err.Error())
					return nil
				}
				warmed <- struct{}{}
				return nil
			})
		}
	}
	err = g.Wait()
	close(warmed)

	n := len(warmed)
	w.logger.InfoContext(ctx, "availability cache warmed",
		"entries", n,
		"days", w.days)
	return n, err
}
