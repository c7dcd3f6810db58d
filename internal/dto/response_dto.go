package dto

// ErrorResponse is the uniform error envelope for every handler.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// PaginatedResponse wraps list endpoints that accept page/page_size.
type PaginatedResponse struct {
	Items    any   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// MessageResult is a plain acknowledgement body.
type MessageResult struct {
	Message string `json:"message"`
}
