package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type ParticipationRepository interface {
	Create(participation *model.Participation) error
	Save(participation *model.Participation) error
	FindByID(id uint) (*model.Participation, error)
	FindByStudentAndActivity(studentID, activityID uint) (*model.Participation, error)
	FindAllByStudent(studentID uint) ([]model.Participation, error)
	FindAllByActivity(activityID uint) ([]model.Participation, error)
}

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Create(participation *model.Participation) error {
	return r.db.Create(participation).Error
}

func (r *participationRepository) Save(participation *model.Participation) error {
	return r.db.Save(participation).Error
}

func (r *participationRepository) FindByID(id uint) (*model.Participation, error) {
	var participation model.Participation
	err := r.db.Preload("Student").Preload("Activity").First(&participation, id).Error
	return &participation, err
}

func (r *participationRepository) FindByStudentAndActivity(studentID, activityID uint) (*model.Participation, error) {
	var participation model.Participation
	err := r.db.Where("student_id = ? AND activity_id = ?", studentID, activityID).
		First(&participation).Error
	return &participation, err
}

func (r *participationRepository) FindAllByStudent(studentID uint) ([]model.Participation, error) {
	var participations []model.Participation
	err := r.db.Preload("Activity").Where("student_id = ? AND active = ?", studentID, true).
		Order("created_at DESC").Find(&participations).Error
	return participations, err
}

func (r *participationRepository) FindAllByActivity(activityID uint) ([]model.Participation, error) {
	var participations []model.Participation
	err := r.db.Preload("Student").Where("activity_id = ? AND active = ?", activityID, true).
		Order("created_at ASC").Find(&participations).Error
	return participations, err
}
