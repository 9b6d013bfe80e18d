package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/velomaps/bikeflow-backend-go/internal/service"
	"github.com/velomaps/bikeflow-backend-go/pkg/response"
)

// AdminHandler handles administrative HTTP requests
type AdminHandler struct {
	ingest  *service.IngestService
	traffic *service.TrafficService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ingest *service.IngestService, traffic *service.TrafficService) *AdminHandler {
	return &AdminHandler{ingest: ingest, traffic: traffic}
}

// Reload handles POST /api/v1/admin/reload. It re-imports the CSV exports and
// swaps a freshly built engine into place; queries running against the old
// snapshot finish undisturbed.
func (h *AdminHandler) Reload(c *gin.Context) {
	summary, err := h.ingest.Reload(h.traffic)
	if err != nil {
		log.WithError(err).Error("reload failed")
		response.Error(c, http.StatusInternalServerError, "reload failed")
		return
	}
	response.Success(c, summary)
}
