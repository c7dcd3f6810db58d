package service

import (
	"errors"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RegistrationService interface {
	Register(student *model.User, req dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	GetMyRegistrations(studentID uint) ([]dto.RegistrationResponse, error)
	GetByActivity(activityID uint) ([]dto.RegistrationResponse, error)
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	activityRepo     repository.ActivityRepository
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	activityRepo repository.ActivityRepository,
) RegistrationService {
	return &registrationService{registrationRepo: registrationRepo, activityRepo: activityRepo}
}

func (s *registrationService) Register(student *model.User, req dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	activity, err := s.activityRepo.FindByID(req.ActivityID)
	if err != nil {
		return nil, asNotFound(err, "activity", req.ActivityID)
	}
	if activity.Status != model.ActivityStatusOpen {
		return nil, apperr.Invalid("activity_id", "activity is not open for registration")
	}

	if _, err := s.registrationRepo.FindByStudentAndActivity(student.ID, activity.ID); err == nil {
		return nil, apperr.Conflict("already registered for this activity")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.registrationRepo.CountByActivity(activity.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(activity.Capacity) {
		return nil, apperr.Conflict("activity is full")
	}

	registration := model.Registration{StudentID: student.ID, ActivityID: activity.ID}
	if err := s.registrationRepo.Create(&registration); err != nil {
		return nil, err
	}
	log.Info().Uint("student_id", student.ID).Uint("activity_id", activity.ID).Msg("Registration created")

	var resp dto.RegistrationResponse
	copier.Copy(&resp, &registration)
	resp.Activity = *activityToDTO(activity)
	return &resp, nil
}

func (s *registrationService) GetMyRegistrations(studentID uint) ([]dto.RegistrationResponse, error) {
	registrations, err := s.registrationRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return registrationsToDTO(registrations), nil
}

func (s *registrationService) GetByActivity(activityID uint) ([]dto.RegistrationResponse, error) {
	if _, err := s.activityRepo.FindByID(activityID); err != nil {
		return nil, asNotFound(err, "activity", activityID)
	}
	registrations, err := s.registrationRepo.FindAllByActivity(activityID)
	if err != nil {
		return nil, err
	}
	return registrationsToDTO(registrations), nil
}

func registrationsToDTO(registrations []model.Registration) []dto.RegistrationResponse {
	resp := make([]dto.RegistrationResponse, 0, len(registrations))
	for i := range registrations {
		var r dto.RegistrationResponse
		copier.Copy(&r, &registrations[i])
		resp = append(resp, r)
	}
	return resp
}
