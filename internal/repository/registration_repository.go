package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(registration *model.Registration) error
	FindByStudentAndActivity(studentID, activityID uint) (*model.Registration, error)
	FindAllByStudent(studentID uint) ([]model.Registration, error)
	FindAllByActivity(activityID uint) ([]model.Registration, error)
	CountByActivity(activityID uint) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(registration *model.Registration) error {
	return r.db.Create(registration).Error
}

func (r *registrationRepository) FindByStudentAndActivity(studentID, activityID uint) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.Where("student_id = ? AND activity_id = ?", studentID, activityID).
		First(&registration).Error
	return &registration, err
}

func (r *registrationRepository) FindAllByStudent(studentID uint) ([]model.Registration, error) {
	var registrations []model.Registration
	err := r.db.Preload("Activity").Where("student_id = ? AND active = ?", studentID, true).
		Order("created_at DESC").Find(&registrations).Error
	return registrations, err
}

func (r *registrationRepository) FindAllByActivity(activityID uint) ([]model.Registration, error) {
	var registrations []model.Registration
	err := r.db.Preload("Student").Where("activity_id = ?", activityID).
		Order("created_at ASC").Find(&registrations).Error
	return registrations, err
}

func (r *registrationRepository) CountByActivity(activityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Registration{}).
		Where("activity_id = ? AND active = ?", activityID, true).Count(&count).Error
	return count, err
}
