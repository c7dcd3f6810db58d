package dto

import "time"

type CreateNewsFeedRequest struct {
	ActivityID  uint   `json:"activity_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type NewsFeedResponse struct {
	ID          uint             `json:"id"`
	Activity    ActivityResponse `json:"activity"`
	Description string           `json:"description"`
	CreatedByID uint             `json:"created_by_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID         uint         `json:"id"`
	NewsFeedID uint         `json:"newsfeed_id"`
	User       UserResponse `json:"user"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"created_at"`
}

// LikeToggleResponse reports the state after a like toggle.
type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
