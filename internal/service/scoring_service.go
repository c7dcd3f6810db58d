package service

import (
	"errors"
	"math"
	"sync"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ScoringService is the discipline-point aggregation engine. A scoring event
// writes or corrects one ledger row, then recomputes two aggregates inside
// the same transaction:
//
//   - the capped subtotal of the (student, activity, group) combination,
//     cached identically on every row of that combination;
//   - the student's overall total: per group, the raw sum across ALL
//     activities capped at the group's max score, summed over groups.
//
// The two cap scopes differ on purpose. The row cache is a per-activity
// snapshot; the persisted student total is the authoritative figure and caps
// each group once, across activities combined.
type ScoringService interface {
	// RecordScore creates or corrects the row for (student, activity,
	// criteria). A correction overwrites the raw score, it never adds.
	RecordScore(req dto.RecordScoreRequest) (*dto.DisciplinePointResponse, error)
	// RecomputeStudent rebuilds the student's row caches for the given
	// groups (nil means all) and the total-score projection. Idempotent.
	RecomputeStudent(studentID uint) (float64, error)
	// RecomputeGroup rebuilds every affected student after a group cap
	// change. Returns the number of students touched.
	RecomputeGroup(groupID uint) (int, error)
	// RemoveCriteria deletes a criterion with its ledger rows and recomputes
	// every student that had rows under it.
	RemoveCriteria(criteriaID uint) error

	ListPoints(requester *model.User, studentID *uint, page, pageSize int) (*dto.PaginatedResponse, error)
}

type scoringService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	evalRepo     repository.EvaluationRepository
	pointRepo    repository.DisciplinePointRepository
	txm          repository.TxManager

	// One writer per student: the ledger write and both recomputations must
	// not interleave with another write for the same student.
	studentLocks sync.Map // map[uint]*sync.Mutex
}

func NewScoringService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	evalRepo repository.EvaluationRepository,
	pointRepo repository.DisciplinePointRepository,
	txm repository.TxManager,
) ScoringService {
	return &scoringService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		evalRepo:     evalRepo,
		pointRepo:    pointRepo,
		txm:          txm,
	}
}

func (s *scoringService) lockStudent(studentID uint) func() {
	v, _ := s.studentLocks.LoadOrStore(studentID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *scoringService) RecordScore(req dto.RecordScoreRequest) (*dto.DisciplinePointResponse, error) {
	if math.IsNaN(req.Score) || math.IsInf(req.Score, 0) {
		return nil, apperr.Invalid("score", "must be a finite number")
	}

	student, err := s.userRepo.FindByID(req.StudentID)
	if err != nil {
		return nil, asNotFound(err, "student", req.StudentID)
	}
	if _, err := s.activityRepo.FindByID(req.ActivityID); err != nil {
		return nil, asNotFound(err, "activity", req.ActivityID)
	}
	criteria, err := s.evalRepo.FindCriteriaByID(req.CriteriaID)
	if err != nil {
		return nil, asNotFound(err, "criteria", req.CriteriaID)
	}

	unlock := s.lockStudent(student.ID)
	defer unlock()

	var row *model.DisciplinePoint
	var total float64

	err = s.txm.Do(func(tx *gorm.DB) error {
		points := s.pointRepo.WithTx(tx)

		existing, err := points.FindByTriple(req.StudentID, req.ActivityID, req.CriteriaID)
		switch {
		case err == nil:
			existing.Score = req.Score
			if err := points.Save(existing); err != nil {
				return err
			}
			row = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &model.DisciplinePoint{
				StudentID:  req.StudentID,
				ActivityID: req.ActivityID,
				CriteriaID: req.CriteriaID,
				Score:      req.Score,
			}
			if err := points.Create(row); err != nil {
				return err
			}
		default:
			return err
		}

		// The cap may have been edited since the criteria lookup; the
		// subtotal must be computed against the committed value, so the
		// group is re-read inside the transaction.
		group, err := s.evalRepo.WithTx(tx).FindGroupByID(criteria.GroupID)
		if err != nil {
			return &apperr.AggregationError{StudentID: req.StudentID, Err: err}
		}
		criteria.Group = *group

		subtotal, err := s.recomputeGroupSubtotal(tx, req.StudentID, req.ActivityID, group)
		if err != nil {
			return &apperr.AggregationError{StudentID: req.StudentID, Err: err}
		}
		row.GroupTotalScore = subtotal

		total, err = s.recomputeStudentTotal(tx, req.StudentID)
		if err != nil {
			return &apperr.AggregationError{StudentID: req.StudentID, Err: err}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).
			Uint("student_id", req.StudentID).
			Uint("activity_id", req.ActivityID).
			Uint("criteria_id", req.CriteriaID).
			Msg("RecordScore: transaction rolled back")
		return nil, err
	}

	log.Info().
		Uint("student_id", req.StudentID).
		Uint("activity_id", req.ActivityID).
		Uint("criteria_id", req.CriteriaID).
		Float64("score", req.Score).
		Float64("group_subtotal", row.GroupTotalScore).
		Float64("student_total", total).
		Msg("Score recorded")

	resp := pointToDTO(row, criteria)
	resp.StudentTotalScore = total
	return resp, nil
}

// recomputeGroupSubtotal caps the raw sum of the (student, activity, group)
// combination at the group max and writes it onto every row of the
// combination. The cap is an upper bound only: a negative sum stays negative.
func (s *scoringService) recomputeGroupSubtotal(tx *gorm.DB, studentID, activityID uint, group *model.EvaluationGroup) (float64, error) {
	points := s.pointRepo.WithTx(tx)

	sum, err := points.SumRawByActivityGroup(studentID, activityID, group.ID)
	if err != nil {
		return 0, err
	}
	subtotal := math.Min(sum, group.MaxScore)
	if err := points.UpdateGroupSubtotal(studentID, activityID, group.ID, subtotal); err != nil {
		return 0, err
	}
	return subtotal, nil
}

// recomputeStudentTotal rebuilds the projection from scratch: every group in
// the registry, the student's raw sum across all activities, capped once per
// group.
func (s *scoringService) recomputeStudentTotal(tx *gorm.DB, studentID uint) (float64, error) {
	groups, err := s.evalRepo.WithTx(tx).FindAllGroups()
	if err != nil {
		return 0, err
	}
	points := s.pointRepo.WithTx(tx)

	var total float64
	for _, group := range groups {
		sum, err := points.SumRawByGroup(studentID, group.ID)
		if err != nil {
			return 0, err
		}
		total += math.Min(sum, group.MaxScore)
	}

	if err := s.userRepo.WithTx(tx).UpdateTotalScore(studentID, total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *scoringService) RecomputeStudent(studentID uint) (float64, error) {
	if _, err := s.userRepo.FindByID(studentID); err != nil {
		return 0, asNotFound(err, "student", studentID)
	}

	unlock := s.lockStudent(studentID)
	defer unlock()

	var total float64
	err := s.txm.Do(func(tx *gorm.DB) error {
		groups, err := s.evalRepo.WithTx(tx).FindAllGroups()
		if err != nil {
			return &apperr.AggregationError{StudentID: studentID, Err: err}
		}
		for i := range groups {
			if err := s.refreshGroupCaches(tx, studentID, groups[i].ID); err != nil {
				return &apperr.AggregationError{StudentID: studentID, Err: err}
			}
		}
		total, err = s.recomputeStudentTotal(tx, studentID)
		if err != nil {
			return &apperr.AggregationError{StudentID: studentID, Err: err}
		}
		return nil
	})
	return total, err
}

// refreshGroupCaches recomputes the row cache of every (activity, group)
// combination the student holds in the given group. The group is read inside
// the transaction so the caches are always built on the committed cap.
func (s *scoringService) refreshGroupCaches(tx *gorm.DB, studentID, groupID uint) error {
	group, err := s.evalRepo.WithTx(tx).FindGroupByID(groupID)
	if err != nil {
		return err
	}
	activityIDs, err := s.pointRepo.WithTx(tx).ActivityIDsByStudentAndGroup(studentID, group.ID)
	if err != nil {
		return err
	}
	for _, activityID := range activityIDs {
		if _, err := s.recomputeGroupSubtotal(tx, studentID, activityID, group); err != nil {
			return err
		}
	}
	return nil
}

func (s *scoringService) RecomputeGroup(groupID uint) (int, error) {
	group, err := s.evalRepo.FindGroupByID(groupID)
	if err != nil {
		return 0, asNotFound(err, "evaluation group", groupID)
	}

	studentIDs, err := s.pointRepo.StudentIDsByGroup(groupID)
	if err != nil {
		return 0, err
	}

	for _, studentID := range studentIDs {
		studentID := studentID
		unlock := s.lockStudent(studentID)
		err := s.txm.Do(func(tx *gorm.DB) error {
			if err := s.refreshGroupCaches(tx, studentID, group.ID); err != nil {
				return &apperr.AggregationError{StudentID: studentID, Err: err}
			}
			if _, err := s.recomputeStudentTotal(tx, studentID); err != nil {
				return &apperr.AggregationError{StudentID: studentID, Err: err}
			}
			return nil
		})
		unlock()
		if err != nil {
			return 0, err
		}
	}

	log.Info().Uint("group_id", groupID).Int("students", len(studentIDs)).
		Msg("Group recomputed after cap change")
	return len(studentIDs), nil
}

func (s *scoringService) RemoveCriteria(criteriaID uint) error {
	criteria, err := s.evalRepo.FindCriteriaByID(criteriaID)
	if err != nil {
		return asNotFound(err, "criteria", criteriaID)
	}

	studentIDs, err := s.pointRepo.StudentIDsByCriteria(criteriaID)
	if err != nil {
		return err
	}

	err = s.txm.Do(func(tx *gorm.DB) error {
		if err := s.pointRepo.WithTx(tx).DeleteByCriteria(criteriaID); err != nil {
			return err
		}
		return s.evalRepo.WithTx(tx).DeleteCriteria(criteriaID)
	})
	if err != nil {
		return err
	}

	// The rows are gone; the surviving caches and totals of affected
	// students must be rebuilt.
	for _, studentID := range studentIDs {
		studentID := studentID
		unlock := s.lockStudent(studentID)
		err := s.txm.Do(func(tx *gorm.DB) error {
			if err := s.refreshGroupCaches(tx, studentID, criteria.GroupID); err != nil {
				return &apperr.AggregationError{StudentID: studentID, Err: err}
			}
			if _, err := s.recomputeStudentTotal(tx, studentID); err != nil {
				return &apperr.AggregationError{StudentID: studentID, Err: err}
			}
			return nil
		})
		unlock()
		if err != nil {
			return err
		}
	}

	log.Info().Uint("criteria_id", criteriaID).Int("students", len(studentIDs)).
		Msg("Criteria removed, affected students recomputed")
	return nil
}

func (s *scoringService) ListPoints(requester *model.User, studentID *uint, page, pageSize int) (*dto.PaginatedResponse, error) {
	// Students see only their own rows; staff may filter by student; admins
	// see everything.
	switch requester.Role {
	case model.RoleAdmin:
	case model.RoleStaff:
	default:
		studentID = &requester.ID
	}

	offset := (page - 1) * pageSize
	points, total, err := s.pointRepo.FindAll(studentID, offset, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DisciplinePointResponse, 0, len(points))
	for i := range points {
		resp := pointToDTO(&points[i], &points[i].Criteria)
		items = append(items, *resp)
	}
	return &dto.PaginatedResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func pointToDTO(row *model.DisciplinePoint, criteria *model.EvaluationCriteria) *dto.DisciplinePointResponse {
	return &dto.DisciplinePointResponse{
		ID:         row.ID,
		StudentID:  row.StudentID,
		ActivityID: row.ActivityID,
		Criteria: dto.CriteriaResponse{
			ID:         criteria.ID,
			Name:       criteria.Name,
			Score:      criteria.Score,
			ActivityID: criteria.ActivityID,
			Group: dto.GroupResponse{
				ID:       criteria.Group.ID,
				Name:     criteria.Group.Name,
				MaxScore: criteria.Group.MaxScore,
			},
		},
		Score:           row.Score,
		GroupTotalScore: row.GroupTotalScore,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func asNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}
