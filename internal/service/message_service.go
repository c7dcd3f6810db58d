package service

import (
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type MessageService interface {
	Send(sender *model.User, req dto.CreateMessageRequest) (*dto.MessageResponse, error)
	GetConversation(user *model.User, peerID uint) ([]dto.MessageResponse, error)
	GetByID(user *model.User, id uint) (*dto.MessageResponse, error)
	// GetStudentPartners lists the students a staff member has exchanged
	// messages with.
	GetStudentPartners(user *model.User) ([]dto.UserResponse, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) Send(sender *model.User, req dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, asNotFound(err, "receiver", req.ReceiverID)
	}

	message := model.Message{
		SenderID:   sender.ID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(&message); err != nil {
		return nil, err
	}
	log.Info().Uint("sender_id", sender.ID).Uint("receiver_id", req.ReceiverID).Msg("Message stored")

	var resp dto.MessageResponse
	copier.Copy(&resp, &message)
	return &resp, nil
}

func (s *messageService) GetConversation(user *model.User, peerID uint) ([]dto.MessageResponse, error) {
	if _, err := s.userRepo.FindByID(peerID); err != nil {
		return nil, asNotFound(err, "receiver", peerID)
	}

	messages, err := s.messageRepo.FindConversation(user.ID, peerID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		var m dto.MessageResponse
		copier.Copy(&m, &messages[i])
		resp = append(resp, m)
	}
	return resp, nil
}

func (s *messageService) GetByID(user *model.User, id uint) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.FindByIDForUser(id, user.ID)
	if err != nil {
		return nil, asNotFound(err, "message", id)
	}

	var resp dto.MessageResponse
	copier.Copy(&resp, message)
	return &resp, nil
}

func (s *messageService) GetStudentPartners(user *model.User) ([]dto.UserResponse, error) {
	partnerIDs, err := s.messageRepo.FindPartnerIDs(user.ID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.UserResponse, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		partner, err := s.userRepo.FindByID(id)
		if err != nil {
			continue
		}
		if partner.Role != model.RoleStudent {
			continue
		}
		var u dto.UserResponse
		copier.Copy(&u, partner)
		students = append(students, u)
	}
	return students, nil
}
