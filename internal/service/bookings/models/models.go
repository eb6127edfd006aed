package models

import (
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
)

// BookingResponse модель бронирования для чтения
type BookingResponse struct {
	ID              int64      `json:"id"`
	Reference       string     `json:"reference"`
	CustomerID      int64      `json:"customerId"`
	VehicleID       int64      `json:"vehicleId"`
	ServiceID       int64      `json:"serviceId"`
	TimeSlotID      int64      `json:"slotId"`
	TechnicianID    *int64     `json:"technicianId,omitempty"`
	Status          string     `json:"status"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	Notes           *string    `json:"notes,omitempty"`
	Price           float64    `json:"price"`
	ServiceName     string     `json:"serviceName"`
	ServiceDuration int        `json:"durationMinutes"`
	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Count    int                `json:"count"`
}

// HistoryEntryResponse запись истории статусов для чтения
type HistoryEntryResponse struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"bookingId"`
	Status      string    `json:"status"`
	ActorUserID int64     `json:"actorUserId"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetCustomerBookingsRequest запрос истории бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
	Limit      uint64  `json:"limit,omitempty"`
	Offset     uint64  `json:"offset,omitempty"`
}

// FromDomainBooking конвертирует domain.Booking в модель чтения
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		VehicleID:       b.VehicleID,
		ServiceID:       b.ServiceID,
		TimeSlotID:      b.TimeSlotID,
		TechnicianID:    b.TechnicianID,
		Status:          string(b.Status),
		ScheduledAt:     b.ScheduledAt,
		Notes:           b.Notes,
		Price:           b.Price,
		ServiceName:     b.ServiceName,
		ServiceDuration: b.ServiceDuration,
		ActualStartTime: b.ActualStartTime,
		ActualEndTime:   b.ActualEndTime,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Count: len(result)}
}

// FromDomainHistory конвертирует записи истории
func FromDomainHistory(entries []*domain.StatusHistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &HistoryEntryResponse{
			ID:          e.ID,
			BookingID:   e.BookingID,
			Status:      string(e.Status),
			ActorUserID: e.ActorUserID,
			Notes:       e.Notes,
			CreatedAt:   e.CreatedAt,
		})
	}
	return result
}
