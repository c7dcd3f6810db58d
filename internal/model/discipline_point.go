package model

import (
	"time"

	"gorm.io/gorm"
)

// DisciplinePoint is one ledger row: the raw score recorded for a
// (student, activity, criteria) triple. A correction overwrites Score in
// place, one criterion contributes at most one raw value per student and
// activity.
//
// GroupTotalScore caches the capped subtotal for the whole
// (student, activity, group) combination as of the last recompute. Every row
// of the same combination carries the same value; it is an aggregate
// snapshot, not this row's own contribution.
type DisciplinePoint struct {
	ID              uint               `gorm:"primarykey" json:"id"`
	StudentID       uint               `json:"student_id" gorm:"not null;uniqueIndex:idx_point_student_activity_criteria;index"`
	Student         User               `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ActivityID      uint               `json:"activity_id" gorm:"not null;uniqueIndex:idx_point_student_activity_criteria;index"`
	Activity        Activity           `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	CriteriaID      uint               `json:"criteria_id" gorm:"not null;uniqueIndex:idx_point_student_activity_criteria"`
	Criteria        EvaluationCriteria `json:"criteria,omitempty" gorm:"foreignKey:CriteriaID"`
	Score           float64            `json:"score" gorm:"not null;default:0"`
	GroupTotalScore float64            `json:"group_total_score" gorm:"not null;default:0"`
	Active          bool               `json:"active" gorm:"not null;default:true"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}
