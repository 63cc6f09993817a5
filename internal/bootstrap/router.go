package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/ennichirag3/blue-carbon-frontend/internal/api/http"
	"github.com/ennichirag3/blue-carbon-frontend/internal/api/http/middleware"
	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	projecthttp "github.com/ennichirag3/blue-carbon-frontend/internal/projects/http"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Backend        string
	Repo           repository.Repository
	Logger         *logging.Logger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	// Registry receives the HTTP metrics and backs /metrics. Defaults to a fresh registry.
	Registry *prometheus.Registry
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = logging.NewNop()
	}
	if dep.Registry == nil {
		dep.Registry = prometheus.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.NewHTTPMetrics(dep.Registry).Middleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Backend, dep.Repo)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(dep.RateLimitRPS, dep.RateLimitBurst).Middleware())

	projectsGroup := api.Group("/projects")
	projecthttp.New(dep.Repo, dep.Logger.Named("projects")).Register(projectsGroup)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
