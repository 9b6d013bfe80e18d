package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/service"
	"github.com/velomaps/bikeflow-backend-go/pkg/response"
)

// StationHandler handles HTTP requests for station data
type StationHandler struct {
	service *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(service *service.StationService) *StationHandler {
	return &StationHandler{service: service}
}

// ListStations handles GET /api/v1/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	stations := h.service.List()
	response.Success(c, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}

// GetStation handles GET /api/v1/stations/:id
func (h *StationHandler) GetStation(c *gin.Context) {
	st, ok := h.service.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "station not found")
		return
	}
	response.Success(c, st)
}

// GetNearby handles GET /api/v1/stations/nearby?lat=..&lon=..&limit=..
func (h *StationHandler) GetNearby(c *gin.Context) {
	var filter models.NearbyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if filter.Latitude < -90 || filter.Latitude > 90 || filter.Longitude < -180 || filter.Longitude > 180 {
		response.BadRequest(c, "lat/lon out of range")
		return
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	stations := h.service.Nearby(filter.Latitude, filter.Longitude, filter.Limit)
	response.Success(c, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}
