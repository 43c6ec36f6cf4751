package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
	authService       services.AuthService
}

func NewEvaluationHandler(evaluationService services.EvaluationService, authService services.AuthService, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
		authService:       authService,
	}
}

// RecordEvaluation upserts the professor's evaluation of a project; the
// project moves to under_review as part of the same operation.
func (h *EvaluationHandler) RecordEvaluation(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	var req services.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "recording evaluation", "project_id", id)

	evaluation, err := h.evaluationService.RecordEvaluation(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// Rankings returns the professor's own evaluations ordered by marks.
func (h *EvaluationHandler) Rankings(c *gin.Context) {
	actor, _ := GetActor(c)

	rankings, err := h.evaluationService.Rankings(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// SetStatus records an explicit review verdict on a project.
func (h *EvaluationHandler) SetStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	actor, _ := GetActor(c)

	var req services.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.evaluationService.SetStatus(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// AssignProfessor routes a project to a professor in the HOD's department.
func (h *EvaluationHandler) AssignProfessor(c *gin.Context) {
	actor, _ := GetActor(c)

	var req services.AssignProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	project, err := h.evaluationService.AssignProfessor(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProfessors lists the professors available for assignment.
func (h *EvaluationHandler) ListProfessors(c *gin.Context) {
	actor, _ := GetActor(c)

	department := models.Department(c.Query("department"))
	professors, err := h.authService.ListProfessors(c.Request.Context(), actor, department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, professors)
}

// ListStudents lists the students of the HOD's department.
func (h *EvaluationHandler) ListStudents(c *gin.Context) {
	actor, _ := GetActor(c)

	students, err := h.authService.ListStudents(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
