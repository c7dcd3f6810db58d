package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

// EvaluationRepository is the registry of evaluation groups and criteria.
type EvaluationRepository interface {
	WithTx(tx *gorm.DB) EvaluationRepository

	CreateGroup(group *model.EvaluationGroup) error
	UpdateGroup(group *model.EvaluationGroup) error
	FindGroupByID(id uint) (*model.EvaluationGroup, error)
	FindAllGroups() ([]model.EvaluationGroup, error)

	CreateCriteria(criteria *model.EvaluationCriteria) error
	FindCriteriaByID(id uint) (*model.EvaluationCriteria, error)
	FindAllCriteria(groupID *uint) ([]model.EvaluationCriteria, error)
	FindFirstCriteriaByActivity(activityID uint) (*model.EvaluationCriteria, error)
	DeleteCriteria(id uint) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) WithTx(tx *gorm.DB) EvaluationRepository {
	if tx == nil {
		return r
	}
	return &evaluationRepository{db: tx}
}

func (r *evaluationRepository) CreateGroup(group *model.EvaluationGroup) error {
	return r.db.Create(group).Error
}

func (r *evaluationRepository) UpdateGroup(group *model.EvaluationGroup) error {
	return r.db.Save(group).Error
}

func (r *evaluationRepository) FindGroupByID(id uint) (*model.EvaluationGroup, error) {
	var group model.EvaluationGroup
	err := r.db.First(&group, id).Error
	return &group, err
}

func (r *evaluationRepository) FindAllGroups() ([]model.EvaluationGroup, error) {
	var groups []model.EvaluationGroup
	err := r.db.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *evaluationRepository) CreateCriteria(criteria *model.EvaluationCriteria) error {
	return r.db.Create(criteria).Error
}

func (r *evaluationRepository) FindCriteriaByID(id uint) (*model.EvaluationCriteria, error) {
	var criteria model.EvaluationCriteria
	err := r.db.Preload("Group").First(&criteria, id).Error
	return &criteria, err
}

func (r *evaluationRepository) FindAllCriteria(groupID *uint) ([]model.EvaluationCriteria, error) {
	query := r.db.Preload("Group")
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	var criteria []model.EvaluationCriteria
	err := query.Order("name ASC").Find(&criteria).Error
	return criteria, err
}

func (r *evaluationRepository) FindFirstCriteriaByActivity(activityID uint) (*model.EvaluationCriteria, error) {
	var criteria model.EvaluationCriteria
	err := r.db.Preload("Group").Where("activity_id = ?", activityID).
		Order("id ASC").First(&criteria).Error
	return &criteria, err
}

func (r *evaluationRepository) DeleteCriteria(id uint) error {
	return r.db.Delete(&model.EvaluationCriteria{}, id).Error
}
