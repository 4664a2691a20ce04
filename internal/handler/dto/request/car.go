package request

type CreateCarRequest struct {
	Make           string `json:"make" binding:"required"`
	Model          string `json:"model" binding:"required"`
	Year           int    `json:"year" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,gt=0"`
	Location       string `json:"location" binding:"required"`
	Description    string `json:"description"`
}

type UpdateCarRequest struct {
	Make           *string `json:"make,omitempty"`
	Model          *string `json:"model,omitempty"`
	Year           *int    `json:"year,omitempty"`
	DailyRateCents *int64  `json:"daily_rate_cents,omitempty"`
	Location       *string `json:"location,omitempty"`
	Description    *string `json:"description,omitempty"`
	IsAvailable    *bool   `json:"is_available,omitempty"`
}
