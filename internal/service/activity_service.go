package service

import (
	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/policy"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ActivityService interface {
	Create(creator *model.User, req dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetByID(id uint) (*dto.ActivityResponse, error)
	GetAll(filter repository.ActivityFilter, page, pageSize int) (*dto.PaginatedResponse, error)
	Delete(actor *model.User, id uint) error
	GetParticipations(activityID uint) ([]dto.ParticipationResponse, error)
	GetAllCategories() ([]dto.CategoryResponse, error)
}

type activityService struct {
	activityRepo      repository.ActivityRepository
	participationRepo repository.ParticipationRepository
	authorizer        policy.Authorizer
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	participationRepo repository.ParticipationRepository,
	authorizer policy.Authorizer,
) ActivityService {
	return &activityService{
		activityRepo:      activityRepo,
		participationRepo: participationRepo,
		authorizer:        authorizer,
	}
}

func (s *activityService) Create(creator *model.User, req dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, apperr.Invalid("end_date", "must not be before start_date")
	}

	activity := model.Activity{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedByID: creator.ID,
		Capacity:    req.Capacity,
		Status:      model.ActivityStatusOpen,
		CategoryID:  req.CategoryID,
		MaxScore:    req.MaxScore,
		ImageURL:    req.ImageURL,
	}
	for _, name := range req.Tags {
		tag, err := s.activityRepo.FindOrCreateTag(name)
		if err != nil {
			return nil, err
		}
		activity.Tags = append(activity.Tags, *tag)
	}

	if err := s.activityRepo.Create(&activity); err != nil {
		return nil, err
	}
	log.Info().Uint("activity_id", activity.ID).Uint("creator_id", creator.ID).Msg("Activity created")

	return s.GetByID(activity.ID)
}

func (s *activityService) GetByID(id uint) (*dto.ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "activity", id)
	}
	return activityToDTO(activity), nil
}

func (s *activityService) GetAll(filter repository.ActivityFilter, page, pageSize int) (*dto.PaginatedResponse, error) {
	offset := (page - 1) * pageSize
	activities, total, err := s.activityRepo.FindAll(filter, offset, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, *activityToDTO(&activities[i]))
	}
	return &dto.PaginatedResponse{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *activityService) Delete(actor *model.User, id uint) error {
	activity, err := s.activityRepo.FindByID(id)
	if err != nil {
		return asNotFound(err, "activity", id)
	}
	if !s.authorizer.Allow(actor, policy.ActionDelete, activity) {
		return policy.ErrForbidden
	}
	return s.activityRepo.Delete(id)
}

func (s *activityService) GetParticipations(activityID uint) ([]dto.ParticipationResponse, error) {
	if _, err := s.activityRepo.FindByID(activityID); err != nil {
		return nil, asNotFound(err, "activity", activityID)
	}
	participations, err := s.participationRepo.FindAllByActivity(activityID)
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

func (s *activityService) GetAllCategories() ([]dto.CategoryResponse, error) {
	categories, err := s.activityRepo.FindAllCategories()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		var c dto.CategoryResponse
		copier.Copy(&c, &categories[i])
		resp = append(resp, c)
	}
	return resp, nil
}

func activityToDTO(activity *model.Activity) *dto.ActivityResponse {
	var resp dto.ActivityResponse
	copier.Copy(&resp, activity)
	resp.Category = dto.CategoryResponse{ID: activity.Category.ID, Name: activity.Category.Name}
	resp.Tags = make([]dto.TagResponse, 0, len(activity.Tags))
	for _, tag := range activity.Tags {
		resp.Tags = append(resp.Tags, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return &resp
}
