// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/config"
	"travelplanner/internal/http/handlers"
	"travelplanner/internal/http/middleware"
	"travelplanner/internal/metrics"
)

// Planner is everything the routes need from the orchestrator.
type Planner interface {
	handlers.Planner
	handlers.StatusReporter
}

type RouterDeps struct {
	Planner        Planner
	Credentials    config.CredentialPresence
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(d.Logger),
		middleware.Recovery(),
		middleware.CORS(d.AllowedOrigins),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "detail": "not found"})
	})

	system := handlers.NewSystemHandler(d.Planner, d.Credentials)
	r.GET("/", system.Root)
	r.GET("/health", system.Health)

	plan := handlers.NewPlanHandler(d.Planner)
	r.POST("/generate-plan", plan.Generate)
	r.POST("/plan-trip", plan.Generate)
	r.POST("/chat", plan.Chat)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	return r
}
