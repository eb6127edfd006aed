package get_customer_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seatslabs/VSC-BookingService/internal/api/handlers"
	"github.com/seatslabs/VSC-BookingService/internal/service/bookings"
	"github.com/seatslabs/VSC-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgInvalidPagination = "некорректные параметры пагинации"
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

// Handle GET /api/v1/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{customerId}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Фильтр по статусу (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		h.logger.Warn("GET /customers/{customerId}/bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
		Status:     statusPtr,
		Limit:      limit,
		Offset:     offset,
	}

	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{customerId}/bookings - Invalid status filter: customer_id=%d, status=%s",
				customerID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{customerId}/bookings - Failed to get bookings: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{customerId}/bookings - Bookings retrieved successfully: customer_id=%d, count=%d",
		customerID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePagination(r *http.Request) (limit, offset uint64, err error) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}
