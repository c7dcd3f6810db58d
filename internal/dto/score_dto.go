package dto

import "time"

// --- Evaluation registry ---

type CreateGroupRequest struct {
	Name     string  `json:"name" binding:"required"`
	MaxScore float64 `json:"max_score" binding:"min=0"`
}

type UpdateGroupRequest struct {
	Name     *string  `json:"name,omitempty"`
	MaxScore *float64 `json:"max_score,omitempty" binding:"omitempty,min=0"`
}

type GroupResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score"`
}

type CreateCriteriaRequest struct {
	GroupID    uint    `json:"group_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Score      float64 `json:"score"`
	ActivityID *uint   `json:"activity_id,omitempty"`
}

type CriteriaResponse struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	Score      float64       `json:"score"`
	ActivityID *uint         `json:"activity_id,omitempty"`
	Group      GroupResponse `json:"group"`
}

// --- Ledger ---

type RecordScoreRequest struct {
	StudentID  uint    `json:"student_id" binding:"required"`
	ActivityID uint    `json:"activity_id" binding:"required"`
	CriteriaID uint    `json:"criteria_id" binding:"required"`
	Score      float64 `json:"score"`
}

// DisciplinePointResponse is one ledger row after aggregation:
// GroupTotalScore is the capped subtotal of the whole
// (student, activity, group) combination, StudentTotalScore the student's
// recomputed overall projection.
type DisciplinePointResponse struct {
	ID                uint             `json:"id"`
	StudentID         uint             `json:"student_id"`
	ActivityID        uint             `json:"activity_id"`
	Criteria          CriteriaResponse `json:"criteria"`
	Score             float64          `json:"score"`
	GroupTotalScore   float64          `json:"group_total_score"`
	StudentTotalScore float64          `json:"student_total_score"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// --- Bulk import ---

// ImportRowError identifies one rejected CSV row; the rest of the file is
// still processed.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	BatchID   string           `json:"batch_id"`
	Processed int              `json:"processed"`
	Succeeded int              `json:"succeeded"`
	Failed    []ImportRowError `json:"failed,omitempty"`
}

// --- Statistics ---

type ClassScoreStat struct {
	ClassName    string  `json:"class_name"`
	TotalScore   float64 `json:"total_score"`
	AvgScore     float64 `json:"avg_score"`
	StudentCount int     `json:"student_count"`
}

// Classification counts students per band of the total-score projection.
type Classification struct {
	Excellent int `json:"excellent"` // >= 90
	Good      int `json:"good"`      // [75, 90)
	Average   int `json:"average"`   // [50, 75)
	Poor      int `json:"poor"`      // < 50
}

type ScoreStatsResponse struct {
	StatsByClass   []ClassScoreStat `json:"stats_by_class"`
	Classification Classification   `json:"classification"`
}
