package model

import (
	"time"

	"gorm.io/gorm"
)

// Registration is a student signing up for an activity, one per
// (student, activity).
type Registration struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	StudentID  uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_registration_student_activity"`
	Student    User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ActivityID uint           `json:"activity_id" gorm:"not null;uniqueIndex:idx_registration_student_activity"`
	Activity   Activity       `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Participation tracks whether a registered student actually attended and
// completed the activity. Proof images live in upstream media storage, only
// the URL is kept here.
type Participation struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	StudentID   uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_participation_student_activity"`
	Student     User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ActivityID  uint           `json:"activity_id" gorm:"not null;uniqueIndex:idx_participation_student_activity"`
	Activity    Activity       `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	IsCompleted bool           `json:"is_completed" gorm:"not null;default:false"`
	ProofURL    *string        `json:"proof_url,omitempty"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
