package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velomaps/bikeflow-backend-go/internal/config"
	"github.com/velomaps/bikeflow-backend-go/internal/handler"
	"github.com/velomaps/bikeflow-backend-go/internal/middleware"
)

// Handlers groups the handlers wired into the router.
type Handlers struct {
	Traffic *handler.TrafficHandler
	Station *handler.StationHandler
	Admin   *handler.AdminHandler
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the map front end
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	window, err := time.ParseDuration(cfg.RateLimitWindow)
	if err != nil {
		window = time.Minute
	}
	r.Use(middleware.RateLimit(cfg.RateLimit, window))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Bikeflow API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		stations := api.Group("/stations")
		{
			stations.GET("", h.Station.ListStations)
			stations.GET("/nearby", h.Station.GetNearby)
			stations.GET("/:id", h.Station.GetStation)
		}

		traffic := api.Group("/traffic")
		{
			traffic.GET("", h.Traffic.GetTraffic)
			traffic.GET("/minutes", h.Traffic.GetMinuteHistogram)
			traffic.GET("/summary", h.Traffic.GetSummary)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.POST("/reload", h.Admin.Reload)
		}
	}

	return r
}
