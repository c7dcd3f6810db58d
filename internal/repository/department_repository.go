package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindAllDepartments() ([]model.Department, error)
	FindDepartmentByID(id uint) (*model.Department, error)
	FindAllClasses() ([]model.Class, error)
	FindClassByID(id uint) (*model.Class, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) FindAllDepartments() ([]model.Department, error) {
	var departments []model.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) FindDepartmentByID(id uint) (*model.Department, error) {
	var department model.Department
	err := r.db.First(&department, id).Error
	return &department, err
}

func (r *departmentRepository) FindAllClasses() ([]model.Class, error) {
	var classes []model.Class
	err := r.db.Preload("Department").Order("name ASC").Find(&classes).Error
	return classes, err
}

func (r *departmentRepository) FindClassByID(id uint) (*model.Class, error) {
	var class model.Class
	err := r.db.First(&class, id).Error
	return &class, err
}
