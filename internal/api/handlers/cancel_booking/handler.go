package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	"github.com/seatslabs/VSC-BookingService/internal/api/middleware"
	cancelBooking "github.com/seatslabs/VSC-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgAlreadyTerminal  = "бронирование уже завершено или отменено"
	msgNotCancellable   = "бронирование нельзя отменить в текущем статусе"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:   bookingID,
		ActorUserID: actorUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyTerminal):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking already terminal: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, cancelBooking.ErrNotCancellable):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not cancellable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotCancellable)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d",
		bookingID, actorUserID)
	w.WriteHeader(http.StatusNoContent)
}
