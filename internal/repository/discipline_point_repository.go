package repository

import (
	"github.com/hxann/eduscore/internal/model"
	"gorm.io/gorm"
)

// DisciplinePointRepository is the scored-evaluation ledger. One row per
// (student, activity, criteria); corrections overwrite in place.
type DisciplinePointRepository interface {
	WithTx(tx *gorm.DB) DisciplinePointRepository

	Create(point *model.DisciplinePoint) error
	Save(point *model.DisciplinePoint) error
	FindByID(id uint) (*model.DisciplinePoint, error)
	FindByTriple(studentID, activityID, criteriaID uint) (*model.DisciplinePoint, error)
	FindAll(studentID *uint, offset, limit int) ([]model.DisciplinePoint, int64, error)

	// SumRawByActivityGroup sums raw scores over the rows of one
	// (student, activity, group) combination.
	SumRawByActivityGroup(studentID, activityID, groupID uint) (float64, error)
	// SumRawByGroup sums raw scores for a student in a group across all
	// activities.
	SumRawByGroup(studentID, groupID uint) (float64, error)
	// UpdateGroupSubtotal writes the capped subtotal onto every row of the
	// (student, activity, group) combination.
	UpdateGroupSubtotal(studentID, activityID, groupID uint, subtotal float64) error

	StudentIDsByGroup(groupID uint) ([]uint, error)
	StudentIDsByCriteria(criteriaID uint) ([]uint, error)
	// ActivityIDsByStudentAndGroup lists the activities in which the student
	// has ledger rows belonging to the group.
	ActivityIDsByStudentAndGroup(studentID, groupID uint) ([]uint, error)
	DeleteByCriteria(criteriaID uint) error
}

type disciplinePointRepository struct {
	db *gorm.DB
}

func NewDisciplinePointRepository(db *gorm.DB) DisciplinePointRepository {
	return &disciplinePointRepository{db: db}
}

func (r *disciplinePointRepository) WithTx(tx *gorm.DB) DisciplinePointRepository {
	if tx == nil {
		return r
	}
	return &disciplinePointRepository{db: tx}
}

func (r *disciplinePointRepository) Create(point *model.DisciplinePoint) error {
	return r.db.Create(point).Error
}

func (r *disciplinePointRepository) Save(point *model.DisciplinePoint) error {
	return r.db.Save(point).Error
}

func (r *disciplinePointRepository) FindByID(id uint) (*model.DisciplinePoint, error) {
	var point model.DisciplinePoint
	err := r.db.Preload("Criteria.Group").First(&point, id).Error
	return &point, err
}

func (r *disciplinePointRepository) FindByTriple(studentID, activityID, criteriaID uint) (*model.DisciplinePoint, error) {
	var point model.DisciplinePoint
	err := r.db.Where("student_id = ? AND activity_id = ? AND criteria_id = ?",
		studentID, activityID, criteriaID).First(&point).Error
	return &point, err
}

func (r *disciplinePointRepository) FindAll(studentID *uint, offset, limit int) ([]model.DisciplinePoint, int64, error) {
	query := r.db.Model(&model.DisciplinePoint{})
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var points []model.DisciplinePoint
	err := query.Preload("Criteria.Group").Preload("Activity").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&points).Error
	return points, total, err
}

func (r *disciplinePointRepository) SumRawByActivityGroup(studentID, activityID, groupID uint) (float64, error) {
	var sum float64
	err := r.db.Model(&model.DisciplinePoint{}).
		Joins("JOIN evaluation_criteria ON evaluation_criteria.id = discipline_points.criteria_id").
		Where("discipline_points.student_id = ? AND discipline_points.activity_id = ? AND evaluation_criteria.group_id = ?",
			studentID, activityID, groupID).
		Where("discipline_points.deleted_at IS NULL").
		Select("COALESCE(SUM(discipline_points.score), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *disciplinePointRepository) SumRawByGroup(studentID, groupID uint) (float64, error) {
	var sum float64
	err := r.db.Model(&model.DisciplinePoint{}).
		Joins("JOIN evaluation_criteria ON evaluation_criteria.id = discipline_points.criteria_id").
		Where("discipline_points.student_id = ? AND evaluation_criteria.group_id = ?", studentID, groupID).
		Where("discipline_points.deleted_at IS NULL").
		Select("COALESCE(SUM(discipline_points.score), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *disciplinePointRepository) UpdateGroupSubtotal(studentID, activityID, groupID uint, subtotal float64) error {
	return r.db.Model(&model.DisciplinePoint{}).
		Where("student_id = ? AND activity_id = ?", studentID, activityID).
		Where("criteria_id IN (?)",
			r.db.Model(&model.EvaluationCriteria{}).Select("id").Where("group_id = ?", groupID)).
		Update("group_total_score", subtotal).Error
}

func (r *disciplinePointRepository) StudentIDsByGroup(groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.DisciplinePoint{}).
		Joins("JOIN evaluation_criteria ON evaluation_criteria.id = discipline_points.criteria_id").
		Where("evaluation_criteria.group_id = ?", groupID).
		Where("discipline_points.deleted_at IS NULL").
		Distinct().Pluck("discipline_points.student_id", &ids).Error
	return ids, err
}

func (r *disciplinePointRepository) StudentIDsByCriteria(criteriaID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.DisciplinePoint{}).
		Where("criteria_id = ?", criteriaID).
		Distinct().Pluck("student_id", &ids).Error
	return ids, err
}

func (r *disciplinePointRepository) ActivityIDsByStudentAndGroup(studentID, groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.DisciplinePoint{}).
		Joins("JOIN evaluation_criteria ON evaluation_criteria.id = discipline_points.criteria_id").
		Where("discipline_points.student_id = ? AND evaluation_criteria.group_id = ?", studentID, groupID).
		Where("discipline_points.deleted_at IS NULL").
		Distinct().Pluck("discipline_points.activity_id", &ids).Error
	return ids, err
}

func (r *disciplinePointRepository) DeleteByCriteria(criteriaID uint) error {
	return r.db.Where("criteria_id = ?", criteriaID).Delete(&model.DisciplinePoint{}).Error
}
