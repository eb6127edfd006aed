package get_available_slots

import (
	"github.com/seatslabs/VSC-BookingService/internal/domain"
	getAvailableSlots "github.com/seatslabs/VSC-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:             s.ID,
			Date:           s.Date.Format(domain.DateFormat),
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
