package model

import (
	"time"

	"gorm.io/gorm"
)

// EvaluationGroup is reference data: a named bucket of criteria whose
// combined contribution to a student is capped at MaxScore.
type EvaluationGroup struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	MaxScore  float64        `json:"max_score" gorm:"not null"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EvaluationCriteria belongs to exactly one group. ActivityID is optional:
// a criterion is either scoped to one activity or global.
type EvaluationCriteria struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	GroupID    uint            `json:"group_id" gorm:"not null;index"`
	Group      EvaluationGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Name       string          `json:"name" gorm:"not null"`
	Score      float64         `json:"score" gorm:"not null;default:0"`
	ActivityID *uint           `json:"activity_id,omitempty" gorm:"index"`
	Activity   *Activity       `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	Active     bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (EvaluationCriteria) TableName() string { return "evaluation_criteria" }
