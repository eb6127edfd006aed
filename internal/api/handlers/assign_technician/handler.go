package assign_technician

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	assignTechnician "github.com/seatslabs/VSC-BookingService/internal/usecase/assign_technician"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgBookingNotFound       = "бронирование не найдено"
	msgTechnicianNotFound    = "техник не найден"
	msgTechnicianUnavailable = "техник недоступен"
	msgBookingTerminal       = "бронирование уже завершено или отменено"
	msgInvalidInput          = "некорректные входные данные"
)

// AssignTechnicianRequest HTTP request model
type AssignTechnicianRequest struct {
	TechnicianID int64 `json:"technicianId"`
}

type Handler struct {
	useCase AssignTechnicianUseCase
	logger  Logger
}

func NewHandler(useCase AssignTechnicianUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/technician
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/technician - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignTechnicianRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/technician - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.useCase.Execute(r.Context(), &assignTechnician.Request{
		BookingID:    bookingID,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignTechnician.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/technician - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, assignTechnician.ErrTechnicianNotFound):
			h.logger.Warn("POST /bookings/{id}/technician - Technician not found: technician_id=%d", req.TechnicianID)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		case errors.Is(err, assignTechnician.ErrTechnicianUnavailable):
			h.logger.Warn("POST /bookings/{id}/technician - Technician unavailable: technician_id=%d", req.TechnicianID)
			handlers.RespondError(w, http.StatusConflict, msgTechnicianUnavailable)

		case errors.Is(err, assignTechnician.ErrBookingTerminal):
			h.logger.Warn("POST /bookings/{id}/technician - Booking terminal: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingTerminal)

		case errors.Is(err, assignTechnician.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/technician - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/technician - Failed to assign technician: booking_id=%d, technician_id=%d, error=%v",
				bookingID, req.TechnicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/technician - Technician assigned successfully: booking_id=%d, technician_id=%d",
		bookingID, req.TechnicianID)
	w.WriteHeader(http.StatusNoContent)
}
