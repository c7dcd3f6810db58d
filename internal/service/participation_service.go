package service

import (
	"errors"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type ParticipationService interface {
	Create(req dto.CreateParticipationRequest) (*dto.ParticipationResponse, error)
	MarkComplete(id uint) (*dto.ParticipationResponse, error)
	GetStudentHistory(studentID uint) ([]dto.ParticipationResponse, error)
}

type participationService struct {
	participationRepo repository.ParticipationRepository
	userRepo          repository.UserRepository
	activityRepo      repository.ActivityRepository
}

func NewParticipationService(
	participationRepo repository.ParticipationRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
) ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		userRepo:          userRepo,
		activityRepo:      activityRepo,
	}
}

func (s *participationService) Create(req dto.CreateParticipationRequest) (*dto.ParticipationResponse, error) {
	if _, err := s.userRepo.FindByID(req.StudentID); err != nil {
		return nil, asNotFound(err, "student", req.StudentID)
	}
	if _, err := s.activityRepo.FindByID(req.ActivityID); err != nil {
		return nil, asNotFound(err, "activity", req.ActivityID)
	}
	if _, err := s.participationRepo.FindByStudentAndActivity(req.StudentID, req.ActivityID); err == nil {
		return nil, apperr.Conflict("participation already recorded for this student and activity")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participation := model.Participation{
		StudentID:  req.StudentID,
		ActivityID: req.ActivityID,
		ProofURL:   req.ProofURL,
	}
	if err := s.participationRepo.Create(&participation); err != nil {
		return nil, err
	}

	var resp dto.ParticipationResponse
	copier.Copy(&resp, &participation)
	return &resp, nil
}

func (s *participationService) MarkComplete(id uint) (*dto.ParticipationResponse, error) {
	participation, err := s.participationRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "participation", id)
	}

	participation.IsCompleted = true
	if err := s.participationRepo.Save(participation); err != nil {
		return nil, err
	}

	var resp dto.ParticipationResponse
	copier.Copy(&resp, participation)
	return &resp, nil
}

func (s *participationService) GetStudentHistory(studentID uint) ([]dto.ParticipationResponse, error) {
	participations, err := s.participationRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ParticipationResponse, 0, len(participations))
	for i := range participations {
		var p dto.ParticipationResponse
		copier.Copy(&p, &participations[i])
		resp = append(resp, p)
	}
	return resp, nil
}
