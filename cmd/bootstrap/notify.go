package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"carwash-booking/internal/infra/notify"
	"carwash-booking/internal/pkg/config"
	"carwash-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			NewNotifier,
			fx.As(new(shared.BookingNotifier)),
		),
	),
)

// NewNotifier picks the transport from NOTIFY_DRIVER and runs it off the
// request path. On stop, in-flight events get until the stop deadline.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*notify.Async, error) {
	var (
		inner   shared.BookingNotifier
		closeFn func() error
	)

	switch cfg.Notify.Driver {
	case "", "log":
		inner = notify.NewLogNotifier(logger)
	case "amqp":
		n, cleanup, err := notify.DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			return nil, err
		}
		inner = n
		closeFn = func() error { cleanup(); return nil }
	case "kafka":
		n := notify.NewKafkaNotifier(notify.NewKafkaWriter(cfg.Notify.KafkaBrokers, cfg.Notify.KafkaTopic))
		inner = n
		closeFn = n.Close
	case "asynq":
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		inner = notify.NewAsynqNotifier(client, cfg.Notify.AsynqQueue)
		closeFn = client.Close
	default:
		return nil, fmt.Errorf("unknown NOTIFY_DRIVER %q", cfg.Notify.Driver)
	}

	async := notify.NewAsync(inner, cfg.Notify.Timeout, cfg.Notify.MaxInFlight, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := async.Wait(ctx); err != nil {
				logger.Warn("notifications still in flight at shutdown", "error", err.Error())
			}
			if closeFn != nil {
				return closeFn()
			}
			return nil
		},
	})

	logger.Info("booking notifier configured", "driver", cfg.Notify.Driver)
	return async, nil
}
