package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

const (
	userTokenTTL  = 24 * time.Hour
	guestTokenTTL = 4 * time.Hour
)

type authService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AuthService {
	return &authService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	// Everyone below director belongs to a department.
	if req.Role != models.RoleDirector && !req.Department.Valid() {
		return nil, fmt.Errorf("%w: department is required for role %s", ErrValidationFailed, req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Role:       req.Role,
		Department: req.Department,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := auth.GenerateToken(user, userTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishEvent(ctx, events.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, userTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) GuestSession(ctx context.Context) (*AuthResponse, error) {
	token, err := auth.GenerateGuestToken(guestTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue guest token: %w", err)
	}

	s.logger.InfoContext(ctx, "guest session issued")
	return &AuthResponse{Token: token, Guest: true}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// ListProfessors returns the professors of a department. HODs are limited to
// their own department; directors may pass any.
func (s *authService) ListProfessors(ctx context.Context, actor auth.Actor, department models.Department) ([]*models.User, error) {
	if actor.IsGuest {
		return nil, NewPermissionError(0, 0, "users", "list", "guests cannot list professors")
	}
	switch actor.Role {
	case models.RoleHOD:
		department = actor.Department
	case models.RoleDirector:
		// any department
	default:
		return nil, NewPermissionError(actor.ID, 0, "users", "list", "role cannot list professors")
	}

	role := models.RoleProfessor
	filters := repositories.UserFilters{Role: &role}
	if department != "" {
		filters.Department = &department
	}

	professors, _, err := s.repo.User().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list professors: %w", err)
	}
	return professors, nil
}

// ListStudents returns the students of the HOD's own department.
func (s *authService) ListStudents(ctx context.Context, actor auth.Actor) ([]*models.User, error) {
	if actor.IsGuest || actor.Role != models.RoleHOD {
		return nil, NewPermissionError(actor.ID, 0, "users", "list", "only HODs list students")
	}

	role := models.RoleStudent
	department := actor.Department
	students, _, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Role:       &role,
		Department: &department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, &events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "event_type", eventType, "error", err)
	}
}
