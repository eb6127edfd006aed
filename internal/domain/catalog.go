package domain

import "time"

// Service услуга из каталога сервисного центра
// Каталог сам по себе обслуживается снаружи; ядру нужны текущие условия
// услуги в момент создания бронирования
type Service struct {
	ID              int64
	Name            string
	BasePrice       float64
	DiscountPercent float64
	DurationMinutes int
	IsActive        bool
}

// EffectivePrice возвращает цену услуги с учётом текущей скидки
// Именно это значение фиксируется на бронировании при создании
func (s *Service) EffectivePrice() float64 {
	discount := s.BasePrice * s.DiscountPercent / 100
	return s.BasePrice - discount
}

// Technician техник сервисного центра
type Technician struct {
	ID             int64
	UserID         int64
	Specialization *string
	IsAvailable    bool
	CreatedAt      time.Time
}
