package response

import (
	"time"

	"carshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	CarID              uuid.UUID `json:"carId"`
	CarMake            string    `json:"carMake"`
	CarModel           string    `json:"carModel"`
	RenterID           uuid.UUID `json:"renterId"`
	RenterEmail        string    `json:"renterEmail"`
	OwnerID            uuid.UUID `json:"ownerId"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Status             string    `json:"status"`
	TotalPriceCents    int64     `json:"totalPriceCents"`
	PaymentRef         *string   `json:"paymentRef,omitempty"`
	CheckoutSessionRef *string   `json:"checkoutSessionRef,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	CarID           uuid.UUID `json:"carId"`
	CarMake         string    `json:"carMake"`
	CarModel        string    `json:"carModel"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 view.ID,
		CarID:              view.CarID,
		CarMake:            view.CarMake,
		CarModel:           view.CarModel,
		RenterID:           view.RenterID,
		RenterEmail:        view.RenterEmail,
		OwnerID:            view.OwnerID,
		StartDate:          view.StartDate,
		EndDate:            view.EndDate,
		Status:             view.Status,
		TotalPriceCents:    view.TotalPriceCents,
		PaymentRef:         view.PaymentRef,
		CheckoutSessionRef: view.CheckoutSessionRef,
		CreatedAt:          view.CreatedAt,
		UpdatedAt:          view.UpdatedAt,
	}
}

func FromBookingListItems(items []*queries.BookingListItem) []*BookingListResponse {
	result := make([]*BookingListResponse, len(items))
	for i, item := range items {
		result[i] = &BookingListResponse{
			ID:              item.ID,
			CarID:           item.CarID,
			CarMake:         item.CarMake,
			CarModel:        item.CarModel,
			StartDate:       item.StartDate,
			EndDate:         item.EndDate,
			Status:          item.Status,
			TotalPriceCents: item.TotalPriceCents,
			CreatedAt:       item.CreatedAt,
		}
	}
	return result
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}
