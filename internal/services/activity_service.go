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
	"github.com/satishkoppanathi/ProjectSphere/internal/models"
	"github.com/satishkoppanathi/ProjectSphere/internal/repositories"
	"github.com/satishkoppanathi/ProjectSphere/internal/validator"
)

const activityLogLimit = 100

type activityService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewActivityService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ActivityService {
	return &activityService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Log appends one guest telemetry record. Any caller may log; the record is
// anonymous apart from the request network metadata.
func (s *activityService) Log(ctx context.Context, req *ActivityLogRequest, ipAddress, userAgent string) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	var details datatypes.JSON
	if len(req.Details) > 0 {
		data, err := json.Marshal(req.Details)
		if err != nil {
			return fmt.Errorf("failed to encode activity details: %w", err)
		}
		details = datatypes.JSON(data)
	}

	activity := &models.GuestActivity{
		Action:    req.Action,
		Details:   details,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}

	if err := s.repo.Activity().Create(ctx, nil, activity); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	if s.eventPublisher != nil {
		event := &events.Event{
			Type: events.EventGuestActivity,
			Data: map[string]interface{}{"action": req.Action},
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "event publish failed", "event_type", event.Type, "error", err)
		}
	}
	return nil
}

// ListRecent returns the newest activity records for staff review.
func (s *activityService) ListRecent(ctx context.Context, actor auth.Actor) ([]*models.GuestActivity, error) {
	if actor.IsGuest || (actor.Role != models.RoleHOD && actor.Role != models.RoleDirector) {
		return nil, NewPermissionError(actor.ID, 0, "activity", "list", "only HODs and directors read activity logs")
	}

	activities, err := s.repo.Activity().ListRecent(ctx, nil, activityLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return activities, nil
}
