package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

// ClassScoreStat is one aggregation row for the admin statistics screen.
type ClassScoreStat struct {
	ClassName    string  `json:"class_name"`
	TotalScore   float64 `json:"total_score"`
	StudentCount int     `json:"student_count"`
}

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *model.User) error
	Update(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByRole(role string) ([]model.User, error)
	FindStaffByDepartment(departmentID uint) ([]model.User, error)
	FindStudentsByClass(classID *uint) ([]model.User, error)
	UpdateTotalScore(userID uint, total float64) error
	ClassScoreStats(classID *uint) ([]ClassScoreStat, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByRole(role string) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ? AND active = ?", role, true).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindStaffByDepartment(departmentID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ? AND department_id = ?", model.RoleStaff, departmentID).
		Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindStudentsByClass(classID *uint) ([]model.User, error) {
	query := r.db.Where("role = ?", model.RoleStudent)
	if classID != nil {
		query = query.Where("class_id = ?", *classID)
	}
	var users []model.User
	err := query.Preload("Class").Preload("Department").Order("username ASC").Find(&users).Error
	return users, err
}

// UpdateTotalScore writes the projection column only. The scoring engine is
// its single caller.
func (r *userRepository) UpdateTotalScore(userID uint, total float64) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("total_score", total).Error
}

func (r *userRepository) ClassScoreStats(classID *uint) ([]ClassScoreStat, error) {
	query := r.db.Model(&model.User{}).
		Select("classes.name AS class_name, COALESCE(SUM(users.total_score), 0) AS total_score, COUNT(users.id) AS student_count").
		Joins("LEFT JOIN classes ON classes.id = users.class_id").
		Where("users.role = ? AND users.deleted_at IS NULL", model.RoleStudent).
		Group("classes.name")
	if classID != nil {
		query = query.Where("users.class_id = ?", *classID)
	}
	var stats []ClassScoreStat
	err := query.Scan(&stats).Error
	return stats, err
}
