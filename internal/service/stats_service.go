package service

import (
	"math"

	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/repository"
)

// Classification band thresholds on the total-score projection.
const (
	bandExcellent = 90.0
	bandGood      = 75.0
	bandAverage   = 50.0
)

// StatsService is a pure reader of the total-score projection; it never
// writes scores.
type StatsService interface {
	ScoreStats(classID *uint) (*dto.ScoreStatsResponse, error)
}

type statsService struct {
	userRepo repository.UserRepository
}

func NewStatsService(userRepo repository.UserRepository) StatsService {
	return &statsService{userRepo: userRepo}
}

func (s *statsService) ScoreStats(classID *uint) (*dto.ScoreStatsResponse, error) {
	stats, err := s.userRepo.ClassScoreStats(classID)
	if err != nil {
		return nil, err
	}

	byClass := make([]dto.ClassScoreStat, 0, len(stats))
	for _, stat := range stats {
		avg := 0.0
		if stat.StudentCount > 0 {
			avg = math.Round(stat.TotalScore/float64(stat.StudentCount)*100) / 100
		}
		name := stat.ClassName
		if name == "" {
			name = "N/A"
		}
		byClass = append(byClass, dto.ClassScoreStat{
			ClassName:    name,
			TotalScore:   stat.TotalScore,
			AvgScore:     avg,
			StudentCount: stat.StudentCount,
		})
	}

	students, err := s.userRepo.FindStudentsByClass(classID)
	if err != nil {
		return nil, err
	}

	var classification dto.Classification
	for _, student := range students {
		switch {
		case student.TotalScore >= bandExcellent:
			classification.Excellent++
		case student.TotalScore >= bandGood:
			classification.Good++
		case student.TotalScore >= bandAverage:
			classification.Average++
		default:
			classification.Poor++
		}
	}

	return &dto.ScoreStatsResponse{StatsByClass: byClass, Classification: classification}, nil
}
