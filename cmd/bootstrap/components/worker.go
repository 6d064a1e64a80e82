package components

import (
	"context"

	"kidcheck/internal/pkg/config"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpirySweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewExpirySweeper(checkInCommands commands.CheckInCommands, cfg config.Config) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(checkInCommands, cfg.Checkin.SweepInterval)
}

func registerSweeper(lc fx.Lifecycle, sweeper *worker.ExpirySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
