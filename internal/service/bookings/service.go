package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatslabs/VSC-BookingService/internal/domain"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	"github.com/seatslabs/VSC-BookingService/internal/service/bookings/models"
)

// Service read-сторона бронирований: карточка, история клиента,
// задания техника, журнал смены статусов
// Мутации бронирований проходят только через usecase-слой
type Service struct {
	bookingRepo BookingRepository
	historyRepo HistoryRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, historyRepo HistoryRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по человекочитаемому номеру
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, domain.CustomerBookingsFilter{
		CustomerID: req.CustomerID,
		Status:     domainStatus,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTechnicianJobs получает задания техника в порядке запланированного времени
func (s *Service) GetTechnicianJobs(ctx context.Context, technicianID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetTechnicianJobs: technician=%d", technicianID)

	if technicianID <= 0 {
		return nil, fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTechnician(ctx, technicianID)
	if err != nil {
		s.logger.Error("GetTechnicianJobs: repository error for technician=%d: %v", technicianID, err)
		return nil, fmt.Errorf("%w: GetTechnicianJobs - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetHistory получает журнал смены статусов бронирования
// Проверяет, что бронирование существует
func (s *Service) GetHistory(ctx context.Context, bookingID int64) ([]*models.HistoryEntryResponse, error) {
	s.logger.Info("GetHistory: booking=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetHistory: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetHistory: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	entries, err := s.historyRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetHistory: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(entries), nil
}
