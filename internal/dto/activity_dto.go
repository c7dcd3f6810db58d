package dto

import "time"

type CreateActivityRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Capacity    uint      `json:"capacity" binding:"required,min=1"`
	CategoryID  uint      `json:"category_id" binding:"required"`
	Tags        []string  `json:"tags,omitempty"`
	MaxScore    float64   `json:"max_score" binding:"min=0"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ActivityResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	CreatedByID uint             `json:"created_by_id"`
	Capacity    uint             `json:"capacity"`
	Status      string           `json:"status"`
	Category    CategoryResponse `json:"category"`
	Tags        []TagResponse    `json:"tags,omitempty"`
	MaxScore    float64          `json:"max_score"`
	ImageURL    *string          `json:"image_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type CreateRegistrationRequest struct {
	ActivityID uint `json:"activity_id" binding:"required"`
}

type RegistrationResponse struct {
	ID         uint             `json:"id"`
	StudentID  uint             `json:"student_id"`
	ActivityID uint             `json:"activity_id"`
	Activity   ActivityResponse `json:"activity,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

type CreateParticipationRequest struct {
	StudentID  uint    `json:"student_id" binding:"required"`
	ActivityID uint    `json:"activity_id" binding:"required"`
	ProofURL   *string `json:"proof_url,omitempty"`
}

type ParticipationResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	ActivityID  uint      `json:"activity_id"`
	IsCompleted bool      `json:"is_completed"`
	ProofURL    *string   `json:"proof_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateReportRequest struct {
	ActivityID uint    `json:"activity_id" binding:"required"`
	ImageURL   *string `json:"image_url,omitempty"`
}

type ReportResponse struct {
	ID          uint             `json:"id"`
	StudentID   uint             `json:"student_id"`
	Activity    ActivityResponse `json:"activity"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Status      string           `json:"status"`
	HandledByID *uint            `json:"handled_by_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
