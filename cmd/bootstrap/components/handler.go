package components

import (
	"applytrack/internal/handler"
	"applytrack/internal/handler/api"
	"applytrack/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAutomationHandler,
		api.NewJobHandler,
		middleware.NewAuthMiddleware,
		func(a *api.AutomationHandler, j *api.JobHandler, auth *middleware.AuthMiddleware) handler.Handlers {
			return handler.Handlers{Automation: a, Jobs: j, Auth: auth}
		},
	),
	fx.Invoke(handler.NewRouter),
)
