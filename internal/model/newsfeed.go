package model

import (
	"time"

	"gorm.io/gorm"
)

// NewsFeed is the announcement post for one activity, one post per activity.
type NewsFeed struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ActivityID  uint           `json:"activity_id" gorm:"not null;uniqueIndex"`
	Activity    Activity       `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	CreatedByID uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Description string         `json:"description" gorm:"type:text"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Like struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_newsfeed"`
	User       User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	NewsFeedID uint           `json:"newsfeed_id" gorm:"not null;uniqueIndex:idx_like_user_newsfeed"`
	NewsFeed   NewsFeed       `json:"newsfeed,omitempty" gorm:"foreignKey:NewsFeedID"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type Comment struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	User       User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	NewsFeedID uint           `json:"newsfeed_id" gorm:"not null;index"`
	NewsFeed   NewsFeed       `json:"newsfeed,omitempty" gorm:"foreignKey:NewsFeedID"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
