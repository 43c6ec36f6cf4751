package models

import (
	"time"
)

// Per-criterion maxima for an evaluation's score breakdown.
const (
	MaxInnovation     = 20
	MaxImplementation = 25
	MaxDocumentation  = 15
	MaxPresentation   = 20
	MaxTeamwork       = 20

	MaxMarks = 100
)

// Criteria is the five-way breakdown composing an evaluation's total marks.
// The total is not re-derived from the breakdown server-side; each field is
// only bounded by its own maximum.
type Criteria struct {
	Innovation     int `json:"innovation" gorm:"not null;default:0"`
	Implementation int `json:"implementation" gorm:"not null;default:0"`
	Documentation  int `json:"documentation" gorm:"not null;default:0"`
	Presentation   int `json:"presentation" gorm:"not null;default:0"`
	Teamwork       int `json:"teamwork" gorm:"not null;default:0"`
}

// Sum returns the combined criteria score.
func (c Criteria) Sum() int {
	return c.Innovation + c.Implementation + c.Documentation + c.Presentation + c.Teamwork
}

// Evaluation is one professor's scored judgment of one project. The
// composite unique index keeps at most one row per (project, evaluator);
// re-evaluating updates the row in place.
type Evaluation struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	ProjectID   uint `json:"project_id" gorm:"not null;uniqueIndex:idx_evaluations_project_evaluator"`
	EvaluatorID uint `json:"evaluator_id" gorm:"not null;uniqueIndex:idx_evaluations_project_evaluator;index"`

	Marks    int      `json:"marks" gorm:"not null;index:,sort:desc"`
	Feedback string   `json:"feedback" gorm:"not null;type:text"`
	Criteria Criteria `json:"criteria" gorm:"embedded;embeddedPrefix:criteria_"`

	EvaluatedAt time.Time `json:"evaluated_at"`

	// Relations
	Project   *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Evaluator *User    `json:"evaluator,omitempty" gorm:"foreignKey:EvaluatorID"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
