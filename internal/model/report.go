package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusRejected = "rejected"
)

// Report is a student-submitted proof or complaint about an activity,
// handled by staff.
type Report struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	StudentID   uint           `json:"student_id" gorm:"not null;index"`
	Student     User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ActivityID  uint           `json:"activity_id" gorm:"not null;index"`
	Activity    Activity       `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Status      string         `json:"status" gorm:"not null;default:'pending'"` // "pending", "approved", "rejected"
	HandledByID *uint          `json:"handled_by_id,omitempty" gorm:"index"`
	HandledBy   *User          `json:"handled_by,omitempty" gorm:"foreignKey:HandledByID"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
