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

// EvaluationService manages the registry of evaluation groups and criteria.
// Mutations that invalidate cached aggregates (cap edits, criteria removal)
// hand off to the scoring engine for an eager recompute.
type EvaluationService interface {
	CreateGroup(req dto.CreateGroupRequest) (*dto.GroupResponse, error)
	UpdateGroup(id uint, req dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	GetAllGroups() ([]dto.GroupResponse, error)

	CreateCriteria(req dto.CreateCriteriaRequest) (*dto.CriteriaResponse, error)
	GetAllCriteria(groupID *uint) ([]dto.CriteriaResponse, error)
	DeleteCriteria(id uint) error
}

type evaluationService struct {
	evalRepo     repository.EvaluationRepository
	activityRepo repository.ActivityRepository
	scoring      ScoringService
}

func NewEvaluationService(
	evalRepo repository.EvaluationRepository,
	activityRepo repository.ActivityRepository,
	scoring ScoringService,
) EvaluationService {
	return &evaluationService{evalRepo: evalRepo, activityRepo: activityRepo, scoring: scoring}
}

func (s *evaluationService) CreateGroup(req dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := model.EvaluationGroup{Name: req.Name, MaxScore: req.MaxScore}
	if err := s.evalRepo.CreateGroup(&group); err != nil {
		return nil, err
	}

	var resp dto.GroupResponse
	copier.Copy(&resp, &group)
	return &resp, nil
}

func (s *evaluationService) UpdateGroup(id uint, req dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	group, err := s.evalRepo.FindGroupByID(id)
	if err != nil {
		return nil, asNotFound(err, "evaluation group", id)
	}

	capChanged := false
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.MaxScore != nil && *req.MaxScore != group.MaxScore {
		group.MaxScore = *req.MaxScore
		capChanged = true
	}

	if err := s.evalRepo.UpdateGroup(group); err != nil {
		return nil, err
	}

	// A cap edit invalidates every cached subtotal and student total built
	// on the old value; recompute eagerly rather than waiting for the next
	// write.
	if capChanged {
		students, err := s.scoring.RecomputeGroup(group.ID)
		if err != nil {
			return nil, err
		}
		log.Info().Uint("group_id", group.ID).Float64("max_score", group.MaxScore).
			Int("students", students).Msg("Group cap updated")
	}

	var resp dto.GroupResponse
	copier.Copy(&resp, group)
	return &resp, nil
}

func (s *evaluationService) GetAllGroups() ([]dto.GroupResponse, error) {
	groups, err := s.evalRepo.FindAllGroups()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		var g dto.GroupResponse
		copier.Copy(&g, &groups[i])
		resp = append(resp, g)
	}
	return resp, nil
}

func (s *evaluationService) CreateCriteria(req dto.CreateCriteriaRequest) (*dto.CriteriaResponse, error) {
	group, err := s.evalRepo.FindGroupByID(req.GroupID)
	if err != nil {
		return nil, asNotFound(err, "evaluation group", req.GroupID)
	}
	if req.ActivityID != nil {
		if _, err := s.activityRepo.FindByID(*req.ActivityID); err != nil {
			return nil, asNotFound(err, "activity", *req.ActivityID)
		}
	}

	criteria := model.EvaluationCriteria{
		GroupID:    req.GroupID,
		Name:       req.Name,
		Score:      req.Score,
		ActivityID: req.ActivityID,
	}
	if err := s.evalRepo.CreateCriteria(&criteria); err != nil {
		return nil, err
	}
	criteria.Group = *group

	return criteriaToDTO(&criteria), nil
}

func (s *evaluationService) GetAllCriteria(groupID *uint) ([]dto.CriteriaResponse, error) {
	criteria, err := s.evalRepo.FindAllCriteria(groupID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CriteriaResponse, 0, len(criteria))
	for i := range criteria {
		resp = append(resp, *criteriaToDTO(&criteria[i]))
	}
	return resp, nil
}

func (s *evaluationService) DeleteCriteria(id uint) error {
	err := s.scoring.RemoveCriteria(id)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) || errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("criteria", id)
		}
	}
	return err
}

func criteriaToDTO(criteria *model.EvaluationCriteria) *dto.CriteriaResponse {
	return &dto.CriteriaResponse{
		ID:         criteria.ID,
		Name:       criteria.Name,
		Score:      criteria.Score,
		ActivityID: criteria.ActivityID,
		Group: dto.GroupResponse{
			ID:       criteria.Group.ID,
			Name:     criteria.Group.Name,
			MaxScore: criteria.Group.MaxScore,
		},
	}
}
