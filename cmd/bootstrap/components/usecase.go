package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"kidcheck/internal/pkg/clock"
	"kidcheck/internal/pkg/config"
	"kidcheck/internal/usecase"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		NewCheckInCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCheckInQueries,
		queries.NewDirectoryQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCheckInCommands(
	checkinRepo commands.CheckInRepository,
	attendanceRepo commands.AttendanceRepository,
	childRepo commands.ChildRepository,
	serviceRepo commands.ServiceRepository,
	userRepo commands.UserRepository,
	notifier commands.NotificationPort,
	checkInQueries queries.CheckInQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
	cfg config.Config,
) commands.CheckInCommands {
	return commands.NewCheckInUseCase(
		checkinRepo,
		attendanceRepo,
		childRepo,
		serviceRepo,
		userRepo,
		notifier,
		checkInQueries,
		db,
		clock,
		cfg.Checkin.NotifyTimeout,
	)
}
