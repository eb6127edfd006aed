package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/seatslabs/VSC-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgSlotNotFound       = "временной слот не найден"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
	msgNotReschedulable   = "бронирование нельзя перенести в текущем статусе"
	msgInvalidInput       = "некорректные входные данные"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewSlotID int64 `json:"newSlotId"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID: bookingID,
		NewSlotID: req.NewSlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot not found: booking_id=%d, slot_id=%d",
				bookingID, req.NewSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot full: booking_id=%d, slot_id=%d",
				bookingID, req.NewSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not reschedulable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%d, slot_id=%d, error=%v",
				bookingID, req.NewSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, slot_id=%d",
		bookingID, req.NewSlotID)
	w.WriteHeader(http.StatusNoContent)
}
