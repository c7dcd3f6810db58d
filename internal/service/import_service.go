package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImportService ingests the attendance/score CSV produced from the
// registration template. Expected header: Student ID, Activity ID, Score,
// Attendance. Each row runs through the same atomic scoring unit as a manual
// entry; a bad row is reported with its position and the rest of the file is
// still processed.
type ImportService interface {
	ImportScores(r io.Reader) (*dto.ImportResult, error)
}

type importService struct {
	userRepo          repository.UserRepository
	activityRepo      repository.ActivityRepository
	evalRepo          repository.EvaluationRepository
	registrationRepo  repository.RegistrationRepository
	participationRepo repository.ParticipationRepository
	scoring           ScoringService
}

func NewImportService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	evalRepo repository.EvaluationRepository,
	registrationRepo repository.RegistrationRepository,
	participationRepo repository.ParticipationRepository,
	scoring ScoringService,
) ImportService {
	return &importService{
		userRepo:          userRepo,
		activityRepo:      activityRepo,
		evalRepo:          evalRepo,
		registrationRepo:  registrationRepo,
		participationRepo: participationRepo,
		scoring:           scoring,
	}
}

func (s *importService) ImportScores(r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{BatchID: uuid.NewString()}
	logger := log.With().Str("batch_id", result.BatchID).Logger()

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Processed++
			result.Failed = append(result.Failed, dto.ImportRowError{
				Row: rowNum, Reason: fmt.Sprintf("malformed CSV row: %v", err),
			})
			continue
		}

		result.Processed++
		if err := s.importRow(columns, record); err != nil {
			logger.Warn().Err(err).Int("row", rowNum).Msg("Import row rejected")
			result.Failed = append(result.Failed, dto.ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Succeeded++
	}

	logger.Info().
		Int("processed", result.Processed).
		Int("succeeded", result.Succeeded).
		Int("failed", len(result.Failed)).
		Msg("Score import finished")
	return result, nil
}

type columnIndex struct {
	studentID  int
	activityID int
	score      int
	attendance int
}

func mapColumns(header []string) (*columnIndex, error) {
	idx := &columnIndex{studentID: -1, activityID: -1, score: -1, attendance: -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "Student ID":
			idx.studentID = i
		case "Activity ID":
			idx.activityID = i
		case "Score":
			idx.score = i
		case "Attendance":
			idx.attendance = i
		}
	}
	if idx.studentID < 0 || idx.activityID < 0 || idx.score < 0 {
		return nil, fmt.Errorf("CSV header must contain Student ID, Activity ID and Score columns")
	}
	return idx, nil
}

func (s *importService) importRow(columns *columnIndex, record []string) error {
	cell := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	studentID, err := strconv.ParseUint(cell(columns.studentID), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid Student ID %q", cell(columns.studentID))
	}
	activityID, err := strconv.ParseUint(cell(columns.activityID), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid Activity ID %q", cell(columns.activityID))
	}

	score := 0.0
	if raw := cell(columns.score); raw != "" {
		score, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid Score %q", raw)
		}
	}

	student, err := s.userRepo.FindByID(uint(studentID))
	if err != nil {
		return asNotFound(err, "student", uint(studentID))
	}
	activity, err := s.activityRepo.FindByID(uint(activityID))
	if err != nil {
		return asNotFound(err, "activity", uint(activityID))
	}

	criteria, err := s.evalRepo.FindFirstCriteriaByActivity(activity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no evaluation criteria configured for activity %d", activity.ID)
		}
		return err
	}

	if _, err := s.registrationRepo.FindByStudentAndActivity(student.ID, activity.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("student %d is not registered for activity %d", student.ID, activity.ID)
		}
		return err
	}

	_, err = s.scoring.RecordScore(dto.RecordScoreRequest{
		StudentID:  student.ID,
		ActivityID: activity.ID,
		CriteriaID: criteria.ID,
		Score:      score,
	})
	if err != nil {
		return err
	}

	// The participation write waits for the scoring unit to commit; a
	// rejected row leaves no state behind. A non-empty attendance cell marks
	// the participation completed.
	attended := cell(columns.attendance) != ""
	return s.upsertParticipation(student.ID, activity.ID, attended)
}

func (s *importService) upsertParticipation(studentID, activityID uint, completed bool) error {
	participation, err := s.participationRepo.FindByStudentAndActivity(studentID, activityID)
	switch {
	case err == nil:
		participation.IsCompleted = completed
		return s.participationRepo.Save(participation)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.participationRepo.Create(&model.Participation{
			StudentID:   studentID,
			ActivityID:  activityID,
			IsCompleted: completed,
		})
	default:
		return err
	}
}
