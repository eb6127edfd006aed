package create_booking

import (
	"time"

	createBooking "github.com/seatslabs/VSC-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID int64   `json:"customerId"`
	VehicleID  int64   `json:"vehicleId"`
	ServiceID  int64   `json:"serviceId"`
	SlotID     int64   `json:"slotId"`
	Notes      *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	CustomerID      int64   `json:"customerId"`
	VehicleID       int64   `json:"vehicleId"`
	ServiceID       int64   `json:"serviceId"`
	SlotID          int64   `json:"slotId"`
	Status          string  `json:"status"`
	ScheduledAt     string  `json:"scheduledAt"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorUserID int64) *createBooking.Request {
	return &createBooking.Request{
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		ServiceID:   r.ServiceID,
		SlotID:      r.SlotID,
		ActorUserID: actorUserID,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		CustomerID:      resp.CustomerID,
		VehicleID:       resp.VehicleID,
		ServiceID:       resp.ServiceID,
		SlotID:          resp.TimeSlotID,
		Status:          resp.Status,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.ServiceDuration,
		Price:           resp.Price,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}