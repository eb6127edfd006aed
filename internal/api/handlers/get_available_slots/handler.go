package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	"github.com/seatslabs/VSC-BookingService/internal/domain"
	getAvailableSlots "github.com/seatslabs/VSC-BookingService/internal/usecase/get_available_slots"
	"github.com/seatslabs/VSC-BookingService/pkg/types"
)

const (
	msgMissingDate  = "отсутствует параметр date"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime  = "некорректный формат времени, ожидается HH:MM"
	msgSlotNotFound = "на указанные дату и время нет свободного слота"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available?date=YYYY-MM-DD[&time=HH:MM]
// С параметром time возвращается только открытый слот на указанное время начала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/available - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/available - Invalid date: %s", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := getAvailableSlots.Request{Date: date}
	if timeStr := r.URL.Query().Get("time"); timeStr != "" {
		startTime := types.TimeString(timeStr)
		if err := startTime.Validate(); err != nil {
			h.logger.Warn("GET /slots/available - Invalid time: %s", timeStr)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		req.StartTime = &startTime
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSlotNotFound):
			h.logger.Warn("GET /slots/available - Slot not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/available - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots/available - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/available - Slots retrieved successfully: date=%s, count=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
