package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/service"
	"github.com/velomaps/bikeflow-backend-go/internal/traffic"
	"github.com/velomaps/bikeflow-backend-go/pkg/response"
)

// TrafficHandler handles HTTP requests for traffic views
type TrafficHandler struct {
	service *service.TrafficService
}

// NewTrafficHandler creates a new traffic handler
func NewTrafficHandler(service *service.TrafficService) *TrafficHandler {
	return &TrafficHandler{service: service}
}

// GetTraffic handles GET /api/v1/traffic?minute=M
// M in [0, 1439] centers the rolling window; -1 (the default) returns the
// all-time view.
func (h *TrafficHandler) GetTraffic(c *gin.Context) {
	var filter models.TrafficFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	view, err := h.service.View(filter.Minute)
	if err != nil {
		if errors.Is(err, traffic.ErrInvalidFilter) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to build traffic view")
		return
	}

	response.Success(c, view)
}

// GetMinuteHistogram handles GET /api/v1/traffic/minutes
func (h *TrafficHandler) GetMinuteHistogram(c *gin.Context) {
	response.Success(c, gin.H{
		"minutes": h.service.MinuteHistogram(),
	})
}

// GetSummary handles GET /api/v1/traffic/summary
func (h *TrafficHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to build summary")
		return
	}
	response.Success(c, summary)
}
