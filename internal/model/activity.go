package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ActivityStatusOpen     = "open"
	ActivityStatusClosed   = "closed"
	ActivityStatusCanceled = "canceled"
)

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex;size:50"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Activity struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	StartDate   time.Time      `json:"start_date" gorm:"not null"`
	EndDate     time.Time      `json:"end_date" gorm:"not null"`
	CreatedByID uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Capacity    uint           `json:"capacity" gorm:"not null"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Status      string         `json:"status" gorm:"not null;default:'open'"` // "open", "closed", "canceled"
	CategoryID  uint           `json:"category_id" gorm:"not null;index"`
	Category    Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags        []Tag          `json:"tags,omitempty" gorm:"many2many:activity_tags;"`
	MaxScore    float64        `json:"max_score" gorm:"not null;default:0"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
