package model

import (
	"time"

	"gorm.io/gorm"
)

// Message is a stored direct message between two users. Delivery is the
// client's concern; this service only persists and lists conversations.
type Message struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SenderID   uint           `json:"sender_id" gorm:"not null;index"`
	Sender     User           `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID uint           `json:"receiver_id" gorm:"not null;index"`
	Receiver   User           `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	SentAt     time.Time      `json:"sent_at" gorm:"autoCreateTime;index"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
