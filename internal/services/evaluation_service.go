package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/satishkoppanathi/ProjectSphere/internal/auth"
	"github.com/satishkoppanathi/ProjectSphere/internal/events"
	"github.com/satishkoppanathi/ProjectSphere/internal/lifecycle"
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

type evaluationService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewEvaluationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) EvaluationService {
	return &evaluationService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// RecordEvaluation upserts the professor's evaluation of a project and moves
// the project to under_review, as a single transaction. Re-evaluating an
// already decided project deliberately pulls it back under review.
func (s *evaluationService) RecordEvaluation(ctx context.Context, actor auth.Actor, projectID uint, req *EvaluationRequest) (*models.Evaluation, error) {
	if errs := s.validator.ValidateEvaluation(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if actor.IsGuest || actor.Role != models.RoleProfessor {
		return nil, NewPermissionError(actor.ID, projectID, "evaluation", "record", "only professors evaluate")
	}

	var evaluation *models.Evaluation
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		project, err := txRepo.Project().GetByIDForUpdate(ctx, nil, projectID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrProjectNotFound
			}
			return err
		}

		if !auth.SameDepartment(actor, project) && !auth.IsAssignedProfessor(actor, project) {
			return NewPermissionError(actor.ID, projectID, "evaluation", "record", "professor outside project department")
		}
		if project.Status == models.StatusDraft {
			return &StateTransitionError{ProjectID: projectID, From: project.Status, Operation: "evaluate"}
		}

		evaluation = &models.Evaluation{
			ProjectID:   projectID,
			EvaluatorID: actor.ID,
			Marks:       req.Marks,
			Feedback:    req.Feedback,
			Criteria: models.Criteria{
				Innovation:     req.Criteria.Innovation,
				Implementation: req.Criteria.Implementation,
				Documentation:  req.Criteria.Documentation,
				Presentation:   req.Criteria.Presentation,
				Teamwork:       req.Criteria.Teamwork,
			},
			EvaluatedAt: time.Now(),
		}

		if err := txRepo.Evaluation().Upsert(ctx, nil, evaluation); err != nil {
			return err
		}
		return txRepo.Project().UpdateStatus(ctx, nil, projectID, lifecycle.EvaluationStatus())
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventProjectEvaluated, map[string]interface{}{
		"project_id":   projectID,
		"evaluator_id": actor.ID,
		"marks":        req.Marks,
	})
	s.logger.InfoContext(ctx, "evaluation recorded", "project_id", projectID, "evaluator_id", actor.ID, "marks", req.Marks)

	return evaluation, nil
}

func (s *evaluationService) GetByProject(ctx context.Context, actor auth.Actor, projectID uint) (*models.Evaluation, error) {
	project, err := s.repo.Project().GetByID(ctx, nil, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	canView := auth.IsOwner(actor, project) ||
		(!actor.IsGuest && (actor.Role == models.RoleDirector || auth.SameDepartment(actor, project) || auth.IsAssignedProfessor(actor, project)))
	if !canView {
		return nil, NewPermissionError(actor.ID, projectID, "evaluation", "read", "no access to project")
	}

	evaluation, err := s.repo.Evaluation().GetByProject(ctx, nil, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return evaluation, nil
}

// Rankings lists the professor's own evaluations ordered by marks, ranked
// from 1 downward. Ties keep insertion order, so equal marks get distinct
// ranks.
func (s *evaluationService) Rankings(ctx context.Context, actor auth.Actor) ([]*RankedEvaluation, error) {
	if actor.IsGuest || actor.Role != models.RoleProfessor {
		return nil, NewPermissionError(actor.ID, 0, "rankings", "read", "only professors have rankings")
	}

	evaluations, err := s.repo.Evaluation().ListByEvaluator(ctx, nil, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	ranked := make([]*RankedEvaluation, 0, len(evaluations))
	for i, evaluation := range evaluations {
		ranked = append(ranked, &RankedEvaluation{Evaluation: evaluation, Rank: i + 1})
	}
	return ranked, nil
}

// SetStatus records an explicit review verdict (approved, rejected or
// completed) on a project in the actor's department.
func (s *evaluationService) SetStatus(ctx context.Context, actor auth.Actor, projectID uint, req *StatusUpdateRequest) (*models.Project, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if actor.IsGuest || (actor.Role != models.RoleProfessor && actor.Role != models.RoleHOD) {
		return nil, NewPermissionError(actor.ID, projectID, "project", "set_status", "only professors and HODs set verdicts")
	}

	var project *models.Project
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		project, err = txRepo.Project().GetByIDForUpdate(ctx, nil, projectID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrProjectNotFound
			}
			return err
		}

		if !auth.SameDepartment(actor, project) {
			return NewPermissionError(actor.ID, projectID, "project", "set_status", "outside department")
		}
		if !lifecycle.CanSetReviewStatus(project.Status, req.Status) {
			return &StateTransitionError{ProjectID: projectID, From: project.Status, To: req.Status}
		}

		if err := txRepo.Project().UpdateStatus(ctx, nil, projectID, req.Status); err != nil {
			return err
		}
		project.Status = req.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventProjectStatusSet, map[string]interface{}{
		"project_id": projectID,
		"status":     string(req.Status),
	})
	s.logger.InfoContext(ctx, "project status set", "project_id", projectID, "status", req.Status)

	return project, nil
}

// AssignProfessor lets an HOD route a project in their department to one of
// the department's professors.
func (s *evaluationService) AssignProfessor(ctx context.Context, actor auth.Actor, req *AssignProfessorRequest) (*models.Project, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if actor.IsGuest || actor.Role != models.RoleHOD {
		return nil, NewPermissionError(actor.ID, req.ProjectID, "project", "assign", "only HODs assign professors")
	}

	var project *models.Project
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		project, err = txRepo.Project().GetByID(ctx, nil, req.ProjectID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrProjectNotFound
			}
			return err
		}
		if !auth.SameDepartment(actor, project) {
			return NewPermissionError(actor.ID, req.ProjectID, "project", "assign", "project outside department")
		}

		professor, err := txRepo.User().GetByID(ctx, nil, req.ProfessorID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return err
		}
		if professor.Role != models.RoleProfessor {
			return fmt.Errorf("%w: user %d is not a professor", ErrValidationFailed, req.ProfessorID)
		}
		if professor.Department != actor.Department {
			return NewPermissionError(actor.ID, req.ProjectID, "project", "assign", "professor outside department")
		}

		if err := txRepo.Project().AssignProfessor(ctx, nil, req.ProjectID, req.ProfessorID); err != nil {
			return err
		}
		project.AssignedProfessor = &professor.ID
		project.Professor = professor
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventProfessorAssigned, map[string]interface{}{
		"project_id":   req.ProjectID,
		"professor_id": req.ProfessorID,
	})
	s.logger.InfoContext(ctx, "professor assigned", "project_id", req.ProjectID, "professor_id", req.ProfessorID)

	return project, nil
}

func (s *evaluationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, &events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "event_type", eventType, "error", err)
	}
}
