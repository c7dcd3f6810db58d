package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

// ActivityFilter narrows the activity listing; zero values mean "no filter".
type ActivityFilter struct {
	CategoryID *uint
	TagName    string
	Keyword    string
}

type ActivityRepository interface {
	Create(activity *model.Activity) error
	Update(activity *model.Activity) error
	FindByID(id uint) (*model.Activity, error)
	FindAll(filter ActivityFilter, offset, limit int) ([]model.Activity, int64, error)
	Delete(id uint) error

	FindAllCategories() ([]model.Category, error)
	FindOrCreateTag(name string) (*model.Tag, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	return r.db.Create(activity).Error
}

func (r *activityRepository) Update(activity *model.Activity) error {
	return r.db.Save(activity).Error
}

func (r *activityRepository) FindByID(id uint) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.Preload("Category").Preload("Tags").Preload("CreatedBy").
		First(&activity, id).Error
	return &activity, err
}

func (r *activityRepository) FindAll(filter ActivityFilter, offset, limit int) ([]model.Activity, int64, error) {
	query := r.db.Model(&model.Activity{}).Where("activities.active = ?", true)

	if filter.CategoryID != nil {
		query = query.Where("activities.category_id = ?", *filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("activities.title ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.TagName != "" {
		query = query.
			Joins("JOIN activity_tags ON activity_tags.activity_id = activities.id").
			Joins("JOIN tags ON tags.id = activity_tags.tag_id").
			Where("tags.name = ?", filter.TagName)
	}

	var total int64
	if err := query.Distinct("activities.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	err := query.Distinct("activities.*").Preload("Category").Preload("Tags").
		Order("activities.created_at DESC").Offset(offset).Limit(limit).
		Find(&activities).Error
	return activities, total, err
}

func (r *activityRepository) Delete(id uint) error {
	return r.db.Delete(&model.Activity{}, id).Error
}

func (r *activityRepository) FindAllCategories() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *activityRepository) FindOrCreateTag(name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("name = ?", name).FirstOrCreate(&tag, model.Tag{Name: name}).Error
	return &tag, err
}
