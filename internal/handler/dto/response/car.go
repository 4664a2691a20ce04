package response

import (
	"time"

	"carshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	DailyRateCents int64     `json:"dailyRateCents"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	IsAvailable    bool      `json:"isAvailable"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromCarView(view *queries.CarView) *CarResponse {
	return &CarResponse{
		ID:             view.ID,
		OwnerID:        view.OwnerID,
		Make:           view.Make,
		Model:          view.Model,
		Year:           view.Year,
		DailyRateCents: view.DailyRateCents,
		Location:       view.Location,
		Description:    view.Description,
		IsAvailable:    view.IsAvailable,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

func FromCarViews(views []*queries.CarView) []*CarResponse {
	result := make([]*CarResponse, len(views))
	for i, view := range views {
		result[i] = FromCarView(view)
	}
	return result
}
