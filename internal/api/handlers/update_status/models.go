package update_status

import (
	"time"

	updateStatus "github.com/seatslabs/VSC-BookingService/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// BookingStatusResponse HTTP response model
type BookingStatusResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	Status          string  `json:"status"`
	ScheduledAt     string  `json:"scheduledAt"`
	ActualStartTime *string `json:"actualStartTime,omitempty"`
	ActualEndTime   *string `json:"actualEndTime,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *BookingStatusResponse {
	return &BookingStatusResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		Status:          resp.Status,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		ActualStartTime: formatTimePtr(resp.ActualStartTime),
		ActualEndTime:   formatTimePtr(resp.ActualEndTime),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
