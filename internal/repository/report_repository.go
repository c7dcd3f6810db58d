package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *model.Report) error
	Save(report *model.Report) error
	FindByID(id uint) (*model.Report, error)
	FindAll(studentID *uint, offset, limit int) ([]model.Report, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) Save(report *model.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) FindByID(id uint) (*model.Report, error) {
	var report model.Report
	err := r.db.Preload("Activity").Preload("Student").First(&report, id).Error
	return &report, err
}

func (r *reportRepository) FindAll(studentID *uint, offset, limit int) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{}).Where("active = ?", true)
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.Preload("Activity").Preload("Student").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&reports).Error
	return reports, total, err
}
