package domain

import (
	"time"
)

// Booking бронирование услуги в сервисном центре
type Booking struct {
	ID         int64
	Reference  string // Человекочитаемый номер вида "BK-123456A1B2", уникальный
	CustomerID int64
	VehicleID  int64
	ServiceID  int64
	TimeSlotID int64
	// TechnicianID назначенный техник; nil, пока техник не назначен
	TechnicianID *int64
	Status       BookingStatus
	// ScheduledAt фиксируется при создании из выбранного слота
	// и меняется только операцией переноса бронирования
	ScheduledAt time.Time
	Notes       *string
	// Price цена, зафиксированная в момент создания бронирования
	// Последующие изменения прайса на неё не влияют
	Price float64

	// ActualStartTime проставляется один раз при переходе в in_progress
	ActualStartTime *time.Time
	// ActualEndTime проставляется один раз при переходе в completed
	ActualEndTime *time.Time

	// Denormalized data for history
	ServiceName     string
	ServiceDuration int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает место в слоте
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// CanBeRescheduled возвращает true, если бронирование можно перенести на другой слот
// Перенос допустим, пока работа не началась
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CustomerBookingsFilter фильтр для выборки бронирований клиента
type CustomerBookingsFilter struct {
	CustomerID int64
	Status     *BookingStatus // Опционально; nil - все статусы
	Limit      uint64         // 0 - без ограничения
	Offset     uint64
}

// ReminderBooking строка выборки для рассылки напоминаний
// Join Booking + Customer + Vehicle + Service, читается джобой напоминаний
type ReminderBooking struct {
	BookingID     int64
	Reference     string
	ScheduledAt   time.Time
	ServiceName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	VehicleName   string
}
