package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/lifecycle"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

type projectService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewProjectService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ProjectService {
	return &projectService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *projectService) Create(ctx context.Context, actor auth.Actor, req *CreateProjectRequest) (*ProjectResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	if !actor.IsGuest && actor.Role != models.RoleStudent && actor.Role != models.RoleHOD {
		return nil, NewPermissionError(actor.ID, 0, "project", "create", "role cannot create projects")
	}

	project := &models.Project{
		Title:             req.Title,
		Description:       req.Description,
		Status:            models.StatusDraft,
		Deadline:          req.Deadline,
		GithubLink:        req.GithubLink,
		LiveLink:          req.LiveLink,
		DocumentationLink: req.DocumentationLink,
	}

	if actor.IsGuest {
		project.IsGuest = true
		guestName := req.GuestName
		if guestName == "" {
			guestName = "Anonymous Guest"
		}
		project.GuestDetails = models.GuestDetails{
			GuestName:  guestName,
			GuestEmail: req.GuestEmail,
		}
		// Guest projects carry an explicit department from the request;
		// every project belongs to one of the six departments.
		if !req.Department.Valid() {
			return nil, fmt.Errorf("%w: a valid department is required", ErrValidationFailed)
		}
		project.Department = req.Department
	} else {
		submitterID := actor.ID
		project.SubmittedBy = &submitterID
		// Student and HOD projects live in the actor's own department.
		project.Department = actor.Department
	}

	for _, member := range req.TeamMembers {
		project.TeamMembers = append(project.TeamMembers, models.TeamMember{
			Name:       member.Name,
			Email:      member.Email,
			RollNumber: member.RollNumber,
		})
	}

	if err := s.repo.Project().Create(ctx, nil, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.publishEvent(ctx, events.EventProjectCreated, map[string]interface{}{
		"project_id": project.ID,
		"is_guest":   project.IsGuest,
	})
	s.logger.InfoContext(ctx, "project created", "project_id", project.ID, "is_guest", project.IsGuest)

	return s.buildResponse(ctx, actor, project), nil
}

func (s *projectService) GetByID(ctx context.Context, actor auth.Actor, id uint) (*ProjectResponse, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, project) {
		return nil, NewPermissionError(actor.ID, id, "project", "read", "not owner, department staff or assigned professor")
	}

	resp := s.buildResponse(ctx, actor, project)
	if evaluation, err := s.repo.Evaluation().GetByProject(ctx, nil, id); err == nil {
		resp.Evaluation = evaluation
	}
	return resp, nil
}

// List returns the projects the actor may see: students and guests their own,
// professors and HODs their department, directors everything.
func (s *projectService) List(ctx context.Context, actor auth.Actor, opts ListOptions) (*ProjectListResponse, error) {
	filters := repositories.ProjectFilters{
		Status:    opts.Status,
		Search:    opts.Search,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	}

	switch {
	case actor.IsGuest:
		filters.GuestOnly = true
	case actor.Role == models.RoleStudent:
		ownerID := actor.ID
		filters.SubmittedBy = &ownerID
	case actor.Role == models.RoleProfessor, actor.Role == models.RoleHOD:
		department := actor.Department
		filters.Department = &department
	case actor.Role == models.RoleDirector:
		filters.Department = opts.Department
	default:
		return nil, NewPermissionError(actor.ID, 0, "project", "list", "unknown role")
	}

	page, size := normalizePage(opts.Page, opts.Size)
	filters.Limit = size
	filters.Offset = (page - 1) * size

	projects, total, err := s.repo.Project().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]*ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, s.buildResponse(ctx, actor, project))
	}

	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

func (s *projectService) Update(ctx context.Context, actor auth.Actor, id uint, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case s.isManagingHOD(actor, project):
		// HODs edit any department project regardless of state.
	case auth.IsOwner(actor, project):
		if !lifecycle.CanOwnerEdit(project.Status) {
			return nil, &StateTransitionError{ProjectID: id, From: project.Status, Operation: "edit"}
		}
	default:
		return nil, NewPermissionError(actor.ID, id, "project", "update", "not the owner or department head")
	}

	applyUpdate(project, req)
	project.UpdatedAt = time.Now()

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Project().Update(ctx, nil, project); err != nil {
			return err
		}
		if req.TeamMembers != nil {
			members := make([]models.TeamMember, 0, len(req.TeamMembers))
			for _, member := range req.TeamMembers {
				members = append(members, models.TeamMember{
					Name:       member.Name,
					Email:      member.Email,
					RollNumber: member.RollNumber,
				})
			}
			if err := txRepo.Project().ReplaceTeamMembers(ctx, nil, id, members); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.InfoContext(ctx, "project updated", "project_id", id)
	return s.GetByID(ctx, actor, id)
}

func (s *projectService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case s.isManagingHOD(actor, project):
		// HODs remove any department project.
	case auth.IsOwner(actor, project):
		if !lifecycle.CanOwnerDelete(project.Status) {
			return &StateTransitionError{ProjectID: id, From: project.Status, Operation: "delete"}
		}
	default:
		return NewPermissionError(actor.ID, id, "project", "delete", "not the owner or department head")
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Evaluation().DeleteByProject(ctx, nil, id); err != nil {
			return err
		}
		if err := txRepo.Submission().DeleteByProject(ctx, nil, id); err != nil {
			return err
		}
		return txRepo.Project().Delete(ctx, nil, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.publishEvent(ctx, events.EventProjectDeleted, map[string]interface{}{"project_id": id})
	s.logger.InfoContext(ctx, "project deleted", "project_id", id)
	return nil
}

// ===== SUBMISSION =====

// Submit creates the next numbered submission and moves the project to
// submitted, all inside one transaction holding the project row lock so
// concurrent submits cannot mint the same version.
func (s *projectService) Submit(ctx context.Context, actor auth.Actor, id uint, req *SubmitProjectRequest) (*SubmitResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	var submission *models.Submission
	var project *models.Project

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		project, err = txRepo.Project().GetByIDForUpdate(ctx, nil, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrProjectNotFound
			}
			return err
		}

		if !auth.IsOwner(actor, project) {
			return NewPermissionError(actor.ID, id, "project", "submit", "not the owner")
		}
		if !lifecycle.CanSubmit(project.Status) {
			return &StateTransitionError{ProjectID: id, From: project.Status, Operation: "submit"}
		}

		version, err := txRepo.Submission().NextVersion(ctx, nil, id)
		if err != nil {
			return err
		}

		files, err := marshalFiles(req.Files)
		if err != nil {
			return err
		}

		submission = &models.Submission{
			ProjectID:   id,
			Version:     version,
			Notes:       req.Notes,
			Files:       files,
			SubmittedAt: time.Now(),
		}
		if !actor.IsGuest {
			submitterID := actor.ID
			submission.SubmittedBy = &submitterID
		}

		if err := txRepo.Submission().Create(ctx, nil, submission); err != nil {
			return err
		}
		if err := txRepo.Project().UpdateStatus(ctx, nil, id, models.StatusSubmitted); err != nil {
			return err
		}
		project.Status = models.StatusSubmitted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventProjectSubmitted, map[string]interface{}{
		"project_id": id,
		"version":    submission.Version,
	})
	s.logger.InfoContext(ctx, "project submitted", "project_id", id, "version", submission.Version)

	return &SubmitResponse{Project: project, Submission: submission}, nil
}

func (s *projectService) ListSubmissions(ctx context.Context, actor auth.Actor, projectID uint) ([]*models.Submission, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, project) {
		return nil, NewPermissionError(actor.ID, projectID, "submissions", "list", "no access to project")
	}

	submissions, err := s.repo.Submission().ListByProject(ctx, nil, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// ===== HELPERS =====

func (s *projectService) getProject(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Project().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// isManagingHOD reports whether the actor is the HOD of the project's
// department. Owners answer to the lifecycle; managing HODs do not.
func (s *projectService) isManagingHOD(actor auth.Actor, project *models.Project) bool {
	return !actor.IsGuest && actor.Role == models.RoleHOD && auth.SameDepartment(actor, project)
}

func (s *projectService) canView(actor auth.Actor, project *models.Project) bool {
	if auth.IsOwner(actor, project) {
		return true
	}
	if actor.IsGuest {
		return false
	}
	switch actor.Role {
	case models.RoleDirector:
		return true
	case models.RoleProfessor:
		return auth.SameDepartment(actor, project) || auth.IsAssignedProfessor(actor, project)
	case models.RoleHOD:
		return auth.SameDepartment(actor, project)
	}
	return false
}

func (s *projectService) buildResponse(_ context.Context, actor auth.Actor, project *models.Project) *ProjectResponse {
	owner := auth.IsOwner(actor, project)
	return &ProjectResponse{
		Project:   project,
		CanEdit:   owner && lifecycle.CanOwnerEdit(project.Status),
		CanDelete: owner && lifecycle.CanOwnerDelete(project.Status),
		CanSubmit: owner && lifecycle.CanSubmit(project.Status),
	}
}

func (s *projectService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, &events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "event_type", eventType, "error", err)
	}
}

func applyUpdate(project *models.Project, req *UpdateProjectRequest) {
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.GithubLink != nil {
		project.GithubLink = *req.GithubLink
	}
	if req.LiveLink != nil {
		project.LiveLink = *req.LiveLink
	}
	if req.DocumentationLink != nil {
		project.DocumentationLink = *req.DocumentationLink
	}
}

func marshalFiles(files []validator.FileManifestRef) (datatypes.JSON, error) {
	if len(files) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file manifest: %w", err)
	}
	return datatypes.JSON(data), nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
