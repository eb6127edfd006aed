package notifyservice

import "time"

// ReminderNotification уведомление-напоминание о визите
// Доставкой (email/SMS) занимается внешний notification-сервис;
// ядро передает ему только данные бронирования
type ReminderNotification struct {
	BookingID     int64     `json:"bookingId"`
	Reference     string    `json:"reference"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	ServiceName   string    `json:"serviceName"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	VehicleName   string    `json:"vehicleName"`
}
