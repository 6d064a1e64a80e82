package components

import (
	repo_impl "kidcheck/internal/infra/repository"
	"kidcheck/internal/usecase/commands"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repo_impl.NewCheckInRepository,
		repo_impl.NewAttendanceRepository,
		repo_impl.NewChildRepository,
		repo_impl.NewServiceRepository,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(commands.LastLoginRecorder)),
		),
		// Read-side stores for queries
		repo_impl.NewCheckInReadStore,
		repo_impl.NewDirectoryReadStore,
		repo_impl.NewUserReadStore,
	),
)
