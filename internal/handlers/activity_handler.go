package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type ActivityHandler struct {
	BaseHandler
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService, logger utils.Logger) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     NewBaseHandler(logger),
		activityService: activityService,
	}
}

// LogActivity appends one telemetry record from the caller.
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	var req services.ActivityLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	err := h.activityService.Log(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// ListActivity returns the newest telemetry records for staff review.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	actor, _ := GetActor(c)

	activities, err := h.activityService.ListRecent(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}
