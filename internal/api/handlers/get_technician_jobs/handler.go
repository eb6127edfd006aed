package get_technician_jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	"github.com/seatslabs/VSC-BookingService/internal/service/bookings"
)

const (
	msgInvalidTechnicianID = "некорректный ID техника"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/technicians/{technicianId}/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	technicianIDStr := vars["technicianId"]

	technicianID, err := strconv.ParseInt(technicianIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /technicians/{technicianId}/jobs - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	result, err := h.service.GetTechnicianJobs(r.Context(), technicianID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /technicians/{technicianId}/jobs - Invalid input: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /technicians/{technicianId}/jobs - Failed to get jobs: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /technicians/{technicianId}/jobs - Jobs retrieved successfully: technician_id=%d, count=%d",
		technicianID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
