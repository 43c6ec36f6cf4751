package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type ProjectHandler struct {
	BaseHandler
	projectService    services.ProjectService
	evaluationService services.EvaluationService
}

func NewProjectHandler(projectService services.ProjectService, evaluationService services.EvaluationService, logger utils.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:       NewBaseHandler(logger),
		projectService:    projectService,
		evaluationService: evaluationService,
	}
}

// CreateProject creates a draft project for the authenticated student, HOD
// or guest.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, _ := GetActor(c)

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	project, err := h.projectService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, _ := GetActor(c)

	opts := services.ListOptions{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      queryInt(c, "page", 1),
		Size:      queryInt(c, "size", 20),
	}
	if status := c.Query("status"); status != "" {
		parsed := models.ProjectStatus(status)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid status filter"})
			return
		}
		opts.Status = &parsed
	}
	if department := c.Query("department"); department != "" {
		parsed := models.Department(department)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid department filter"})
			return
		}
		opts.Department = &parsed
	}

	projects, err := h.projectService.List(c.Request.Context(), actor, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	if err := h.projectService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SubmitProject creates the next submission version and moves the project to
// submitted.
func (h *ProjectHandler) SubmitProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	// Every submission field is optional, so an empty body is a valid
	// request.
	var req services.SubmitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "submitting project", "project_id", id)

	resp, err := h.projectService.Submit(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProjectHandler) ListSubmissions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	submissions, err := h.projectService.ListSubmissions(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// GetEvaluation returns the latest evaluation of a project.
func (h *ProjectHandler) GetEvaluation(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	evaluation, err := h.evaluationService.GetByProject(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value := c.Query(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
