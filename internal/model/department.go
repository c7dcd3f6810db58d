package model

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	Code      string         `json:"code" gorm:"not null;uniqueIndex;size:10"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Class struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	Code         string         `json:"code" gorm:"not null;uniqueIndex;size:10"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	Department   Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Active       bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Class) TableName() string { return "classes" }
