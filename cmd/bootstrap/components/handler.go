package components

import (
	"kidcheck/internal/handler"
	"kidcheck/internal/handler/api"
	"kidcheck/internal/handler/middleware"
	"kidcheck/internal/pkg/config"
	"kidcheck/internal/pkg/jwt"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewCheckinHandler,
		api.NewScanHandler,
		api.NewDirectoryHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	cfg config.Config,
) *api.AuthHandler {
	return api.NewAuthHandler(authCommands, userQueries, jwtService, cfg.Cookie)
}
