package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/satishkoppanathi/ProjectSphere/internal/models"
)

// ValidationError represents a single field-level rule violation.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground struct validation with the project's
// business rules registered as custom tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates a struct and converts the result to ValidationErrors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errs ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fieldErr.Field(),
				Message: v.getErrorMessage(fieldErr),
				Value:   fieldErr.Value(),
				Rule:    fieldErr.Tag(),
			})
		}
	}

	return errs
}

// registerBusinessRules registers the domain's custom validators.
func (v *Validator) registerBusinessRules() {
	// Department must be one of the six fixed values.
	v.validate.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return models.Department(fl.Field().String()).Valid()
	})

	// Role must be a known role.
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	// Status-change targets are limited to professor-settable verdicts.
	v.validate.RegisterValidation("review_status", func(fl validator.FieldLevel) bool {
		switch models.ProjectStatus(fl.Field().String()) {
		case models.StatusApproved, models.StatusRejected, models.StatusCompleted:
			return true
		}
		return false
	})

	// Project title: 1-100 characters after trimming.
	v.validate.RegisterValidation("project_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 100
	})
}

// ValidateEvaluation applies the evaluation business rules on top of struct
// validation: marks bounds and the per-criterion maxima.
func (v *Validator) ValidateEvaluation(req *EvaluationRequest) ValidationErrors {
	errs := v.Validate(req)

	checks := []struct {
		field string
		value int
		max   int
	}{
		{"innovation", req.Criteria.Innovation, models.MaxInnovation},
		{"implementation", req.Criteria.Implementation, models.MaxImplementation},
		{"documentation", req.Criteria.Documentation, models.MaxDocumentation},
		{"presentation", req.Criteria.Presentation, models.MaxPresentation},
		{"teamwork", req.Criteria.Teamwork, models.MaxTeamwork},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > check.max {
			errs = append(errs, ValidationError{
				Field:   check.field,
				Message: fmt.Sprintf("must be between 0 and %d", check.max),
				Value:   check.value,
				Rule:    "criteria_range",
			})
		}
	}

	return errs
}

// getErrorMessage returns user-friendly error messages.
func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "department":
		return "must be a valid department"
	case "user_role":
		return "must be one of student, professor, hod, director"
	case "review_status":
		return "must be one of approved, rejected, completed"
	case "project_title":
		return "must be between 1 and 100 characters"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
