package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// CreatedResponse acknowledges a create and carries the generated identifier
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
