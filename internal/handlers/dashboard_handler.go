package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	analyticsService services.AnalyticsService
}

func NewDashboardHandler(dashboardService services.DashboardService, analyticsService services.AnalyticsService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		analyticsService: analyticsService,
	}
}

func (h *DashboardHandler) StudentDashboard(c *gin.Context) {
	actor, _ := GetActor(c)

	dashboard, err := h.dashboardService.StudentDashboard(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) ProfessorDashboard(c *gin.Context) {
	actor, _ := GetActor(c)

	dashboard, err := h.dashboardService.ProfessorDashboard(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) HODDashboard(c *gin.Context) {
	actor, _ := GetActor(c)

	dashboard, err := h.dashboardService.HODDashboard(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) DirectorDashboard(c *gin.Context) {
	actor, _ := GetActor(c)

	dashboard, err := h.dashboardService.DirectorDashboard(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// DepartmentStats serves the HOD's department overview.
func (h *DashboardHandler) DepartmentStats(c *gin.Context) {
	actor, _ := GetActor(c)

	stats, err := h.analyticsService.DepartmentStats(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DirectorAnalytics serves the institution-wide aggregates.
func (h *DashboardHandler) DirectorAnalytics(c *gin.Context) {
	actor, _ := GetActor(c)

	analytics, err := h.analyticsService.DirectorAnalytics(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// DepartmentOverviews serves the director's per-department table.
func (h *DashboardHandler) DepartmentOverviews(c *gin.Context) {
	actor, _ := GetActor(c)

	overviews, err := h.analyticsService.DepartmentOverviews(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overviews)
}

// TopProjects serves the highest-marked evaluations.
func (h *DashboardHandler) TopProjects(c *gin.Context) {
	actor, _ := GetActor(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	evaluations, err := h.analyticsService.TopProjects(c.Request.Context(), actor, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluations)
}

// ExportAnalyticsReport streams the analytics workbook as a download.
func (h *DashboardHandler) ExportAnalyticsReport(c *gin.Context) {
	actor, _ := GetActor(c)

	data, filename, err := h.analyticsService.ExportAnalyticsReport(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
