package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/cache"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories/postgres"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

var testDBCounter atomic.Int64

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	manager   ServiceManager
	publisher *events.MockEventPublisher
}

// newTestEnv spins up an isolated in-memory SQLite database with the full
// service stack wired against it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the shared in-memory database alive and
	// serializes writers the way SQLite expects.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.TeamMember{},
		&models.Evaluation{},
		&models.Submission{},
		&models.GuestActivity{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	slogLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	publisher := events.NewMockEventPublisher(slogLogger)
	cacheHelper := cache.NewCacheHelper(nil, "test:")

	manager := NewServiceManager(db, repo, slogLogger, validator.New(), publisher, cacheHelper)

	return &testEnv{
		db:        db,
		repo:      repo,
		manager:   manager,
		publisher: publisher,
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role models.UserRole, department models.Department) *models.User {
	t.Helper()

	user := &models.User{
		Name:       name,
		Email:      fmt.Sprintf("%s_%d@example.edu", role, testDBCounter.Add(1)),
		Password:   "x",
		Role:       role,
		Department: department,
	}
	if err := e.repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("failed to create %s: %v", role, err)
	}
	return user
}

func (e *testEnv) createProject(t *testing.T, owner *models.User, title string) *ProjectResponse {
	t.Helper()

	resp, err := e.manager.Project().Create(context.Background(), auth.UserActor(owner), &CreateProjectRequest{
		Title:       title,
		Description: "A test project with enough description.",
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return resp
}

func (e *testEnv) submit(t *testing.T, owner *models.User, projectID uint) *SubmitResponse {
	t.Helper()

	resp, err := e.manager.Project().Submit(context.Background(), auth.UserActor(owner), projectID, &SubmitProjectRequest{})
	if err != nil {
		t.Fatalf("failed to submit project %d: %v", projectID, err)
	}
	return resp
}

func (e *testEnv) projectStatus(t *testing.T, projectID uint) models.ProjectStatus {
	t.Helper()

	project, err := e.repo.Project().GetByID(context.Background(), nil, projectID)
	if err != nil {
		t.Fatalf("failed to reload project %d: %v", projectID, err)
	}
	return project.Status
}

func validEvaluation(marks int) *EvaluationRequest {
	return &EvaluationRequest{
		Marks:    marks,
		Feedback: "Reviewed in detail.",
		Criteria: validator.CriteriaRequest{
			Innovation:     10,
			Implementation: 20,
			Documentation:  10,
			Presentation:   10,
			Teamwork:       10,
		},
	}
}
