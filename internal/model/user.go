package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `json:"username" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         string         `json:"role" gorm:"not null;default:'student'"` // "admin", "staff", "student"
	AvatarURL    *string        `json:"avatar_url,omitempty"`
	DepartmentID *uint          `json:"department_id,omitempty" gorm:"index"`
	Department   *Department    `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	ClassID      *uint          `json:"class_id,omitempty" gorm:"index"`
	Class        *Class         `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	// TotalScore is a projection owned by the scoring engine. No other code
	// path writes it.
	TotalScore float64        `json:"total_score" gorm:"not null;default:0"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsStaff() bool { return u.Role == RoleStaff }
