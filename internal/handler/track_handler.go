package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/gpx-records/internal/models"
	"github.com/jengzang/gpx-records/internal/service"
	"github.com/jengzang/gpx-records/pkg/response"
)

// TrackHandler handles HTTP requests for track points
type TrackHandler struct {
	trackService *service.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
	}
}

// GetTrackPoints handles GET /api/v1/tracks/points
func (h *TrackHandler) GetTrackPoints(c *gin.Context) {
	// Parse query parameters
	var filter models.TrackPointFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	// Get track points
	result, err := h.trackService.GetTrackPoints(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetTrackPointByID handles GET /api/v1/tracks/points/:id
func (h *TrackHandler) GetTrackPointByID(c *gin.Context) {
	// Parse ID
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid track point ID")
		return
	}

	// Get track point
	point, err := h.trackService.GetTrackPointByID(id)
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "Track point not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, point)
}
