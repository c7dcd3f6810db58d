package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *model.Message) error
	FindByIDForUser(id, userID uint) (*model.Message, error)
	FindConversation(userID, peerID uint) ([]model.Message, error)
	// FindPartnerIDs lists every user the given user has exchanged messages
	// with.
	FindPartnerIDs(userID uint) ([]uint, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByIDForUser(id, userID uint) (*model.Message, error) {
	var message model.Message
	err := r.db.Where("id = ? AND (sender_id = ? OR receiver_id = ?)", id, userID, userID).
		First(&message).Error
	return &message, err
}

func (r *messageRepository) FindConversation(userID, peerID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID).
		Order("sent_at DESC").Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindPartnerIDs(userID uint) ([]uint, error) {
	var messages []model.Message
	err := r.db.Select("sender_id", "receiver_id").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var ids []uint
	for _, m := range messages {
		for _, id := range []uint{m.SenderID, m.ReceiverID} {
			if id != userID && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
