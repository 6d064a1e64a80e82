package bootstrap

import (
	"context"
	"log/slog"

	"kidcheck/internal/infra/notify"
	"kidcheck/internal/pkg/config"
	"kidcheck/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config) (commands.NotificationPort, error) {
	if cfg.NATS.URL == "" {
		slog.Info("NATS_URL not set, push notifications disabled")
		return notify.NewNopNotifier(), nil
	}

	notifier, cleanup, err := notify.NewNATSNotifier(cfg.NATS.URL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return notifier, nil
}
