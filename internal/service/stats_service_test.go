package service

import (
	"testing"

	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
)

func TestScoreStatsAveragesAndClassification(t *testing.T) {
	users := newFakeUserRepo()
	users.classStats = []repository.ClassScoreStat{
		{ClassName: "SE1901", TotalScore: 250, StudentCount: 3},
		{ClassName: "", TotalScore: 40, StudentCount: 1},
	}

	classID := uint(1)
	scores := []float64{95, 80, 60, 40}
	for i, score := range scores {
		users.users[uint(i+1)] = &model.User{
			ID: uint(i + 1), Role: model.RoleStudent, ClassID: &classID, TotalScore: score,
		}
	}

	stats, err := NewStatsService(users).ScoreStats(nil)
	if err != nil {
		t.Fatalf("ScoreStats: %v", err)
	}

	if len(stats.StatsByClass) != 2 {
		t.Fatalf("classes = %d, want 2", len(stats.StatsByClass))
	}
	if got := stats.StatsByClass[0].AvgScore; got != 83.33 {
		t.Errorf("avg = %v, want 83.33 (rounded to two decimals)", got)
	}
	if got := stats.StatsByClass[1].ClassName; got != "N/A" {
		t.Errorf("unassigned class name = %q, want \"N/A\"", got)
	}

	c := stats.Classification
	if c.Excellent != 1 || c.Good != 1 || c.Average != 1 || c.Poor != 1 {
		t.Errorf("classification = %+v, want one student per band", c)
	}
}

func TestScoreStatsBandBoundaries(t *testing.T) {
	users := newFakeUserRepo()
	// Thresholds are inclusive lower bounds: 90, 75 and 50 land in the upper
	// band.
	for i, score := range []float64{90, 75, 50, 49.99} {
		users.users[uint(i+1)] = &model.User{ID: uint(i + 1), Role: model.RoleStudent, TotalScore: score}
	}

	stats, err := NewStatsService(users).ScoreStats(nil)
	if err != nil {
		t.Fatalf("ScoreStats: %v", err)
	}

	c := stats.Classification
	if c.Excellent != 1 || c.Good != 1 || c.Average != 1 || c.Poor != 1 {
		t.Errorf("classification = %+v, want 1/1/1/1 at the boundaries", c)
	}
}
