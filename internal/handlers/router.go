package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/services"
	"github.com/satishkoppanathi/ProjectSphere/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	projectHandler    *ProjectHandler
	evaluationHandler *EvaluationHandler
	dashboardHandler  *DashboardHandler
	activityHandler   *ActivityHandler

	serviceManager services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		projectHandler:    NewProjectHandler(serviceManager.Project(), serviceManager.Evaluation(), logger),
		evaluationHandler: NewEvaluationHandler(serviceManager.Evaluation(), serviceManager.Auth(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Analytics(), logger),
		activityHandler:   NewActivityHandler(serviceManager.Activity(), logger),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public authentication routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
		authRoutes.POST("/guest", hm.authHandler.GuestSession)
		authRoutes.GET("/profile", AuthRequired(), hm.authHandler.Profile)
	}

	// Everything below requires a valid token (guest tokens included).
	authed := v1.Group("")
	authed.Use(AuthRequired())
	{
		projects := authed.Group("/projects")
		{
			// Ownership checks run in the service; the role gate lets
			// guest tokens through.
			projects.POST("", RequireRole(models.RoleStudent, models.RoleHOD), hm.projectHandler.CreateProject)
			projects.GET("", hm.projectHandler.ListProjects)
			projects.GET("/:id", hm.projectHandler.GetProject)
			projects.PUT("/:id", RequireRole(models.RoleStudent, models.RoleHOD), hm.projectHandler.UpdateProject)
			projects.DELETE("/:id", RequireRole(models.RoleStudent, models.RoleHOD), hm.projectHandler.DeleteProject)
			projects.POST("/:id/submit", RequireRole(models.RoleStudent), hm.projectHandler.SubmitProject)
			projects.GET("/:id/submissions", hm.projectHandler.ListSubmissions)
			projects.GET("/:id/evaluation", hm.projectHandler.GetEvaluation)

			// Professor review actions
			projects.POST("/:id/evaluate", RequireUser(), RequireRole(models.RoleProfessor), hm.evaluationHandler.RecordEvaluation)
			projects.PUT("/:id/status", RequireUser(), RequireRole(models.RoleProfessor, models.RoleHOD), hm.evaluationHandler.SetStatus)
		}

		evaluations := authed.Group("/evaluations", RequireUser(), RequireRole(models.RoleProfessor))
		{
			evaluations.GET("/rankings", hm.evaluationHandler.Rankings)
		}

		hod := authed.Group("/hod", RequireUser(), RequireRole(models.RoleHOD))
		{
			hod.POST("/assign", hm.evaluationHandler.AssignProfessor)
			hod.GET("/professors", hm.evaluationHandler.ListProfessors)
			hod.GET("/students", hm.evaluationHandler.ListStudents)
			hod.GET("/stats", hm.dashboardHandler.DepartmentStats)
		}

		director := authed.Group("/director", RequireUser(), RequireRole(models.RoleDirector))
		{
			director.GET("/analytics", hm.dashboardHandler.DirectorAnalytics)
			director.GET("/analytics/export", hm.dashboardHandler.ExportAnalyticsReport)
			director.GET("/departments", hm.dashboardHandler.DepartmentOverviews)
			director.GET("/top-projects", hm.dashboardHandler.TopProjects)
			director.GET("/professors", hm.evaluationHandler.ListProfessors)
		}

		dashboards := authed.Group("/dashboards", RequireUser())
		{
			dashboards.GET("/student", RequireRole(models.RoleStudent), hm.dashboardHandler.StudentDashboard)
			dashboards.GET("/professor", RequireRole(models.RoleProfessor), hm.dashboardHandler.ProfessorDashboard)
			dashboards.GET("/hod", RequireRole(models.RoleHOD), hm.dashboardHandler.HODDashboard)
			dashboards.GET("/director", RequireRole(models.RoleDirector), hm.dashboardHandler.DirectorDashboard)
		}

		activity := authed.Group("/activity")
		{
			activity.POST("", hm.activityHandler.LogActivity)
			activity.GET("", RequireUser(), RequireRole(models.RoleHOD, models.RoleDirector), hm.activityHandler.ListActivity)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "projectsphere",
	})
}
