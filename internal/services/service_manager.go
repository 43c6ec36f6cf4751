package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/cache"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher

	authService       AuthService
	projectService    ProjectService
	evaluationService EvaluationService
	dashboardService  DashboardService
	analyticsService  AnalyticsService
	activityService   ActivityService

	shutdown bool
	mu       sync.RWMutex
}

// NewServiceManager wires every service with its shared dependencies.
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, cacheHelper *cache.CacheHelper) ServiceManager {
	m := &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}

	m.authService = NewAuthService(repo, db, logger, v, publisher)
	m.projectService = NewProjectService(repo, db, logger, v, publisher)
	m.evaluationService = NewEvaluationService(repo, db, logger, v, publisher)
	m.analyticsService = NewAnalyticsService(repo, db, logger, cacheHelper)
	m.dashboardService = NewDashboardService(repo, db, logger, m.analyticsService)
	m.activityService = NewActivityService(repo, db, logger, v, publisher)

	return m
}

func (m *serviceManager) Auth() AuthService             { return m.authService }
func (m *serviceManager) Project() ProjectService       { return m.projectService }
func (m *serviceManager) Evaluation() EvaluationService { return m.evaluationService }
func (m *serviceManager) Dashboard() DashboardService   { return m.dashboardService }
func (m *serviceManager) Analytics() AnalyticsService   { return m.analyticsService }
func (m *serviceManager) Activity() ActivityService     { return m.activityService }

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return m.repo.Ping(ctx)
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if m.eventPublisher != nil {
		if err := m.eventPublisher.Close(); err != nil {
			m.logger.Warn("event publisher close failed", "error", err)
		}
	}

	m.logger.Info("service manager shut down")
	return nil
}
