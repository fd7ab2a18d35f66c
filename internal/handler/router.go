package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"applytrack/internal/domain/user"
	"applytrack/internal/handler/api"
	"applytrack/internal/handler/middleware"
	"applytrack/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Automation *api.AutomationHandler
	Jobs       *api.JobHandler
	Auth       *middleware.AuthMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(h.Auth.RequireAuth())
	{
		rules := apiGroup.Group("/automation/rules")
		addRoutes(rules, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Automation.CreateRule},
			{Method: http.MethodGet, Path: "", Handler: h.Automation.ListRules},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Automation.GetRule},
			{Method: http.MethodPost, Path: "/:id/reset", Handler: h.Automation.ResetRule},
			{Method: http.MethodPost, Path: "/:id/enable", Handler: h.Automation.EnableRule},
			{Method: http.MethodPost, Path: "/:id/disable", Handler: h.Automation.DisableRule},
		})

		adminOnly := []gin.HandlerFunc{h.Auth.RequireRoleAtLeast(user.RoleAdmin)}
		addRoutes(apiGroup.Group("/automation"), []route{
			{Method: http.MethodPost, Path: "/ticks", Handler: h.Automation.RunTick, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/scheduler", Handler: h.Automation.SchedulerStats, Mw: adminOnly},
		})

		jobs := apiGroup.Group("/jobs")
		addRoutes(jobs, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Jobs.CreateJob},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Jobs.GetJob},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
