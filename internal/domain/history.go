package domain

import "time"

// StatusHistoryEntry запись в истории смены статусов бронирования
// Append-only: записи никогда не обновляются и не удаляются
type StatusHistoryEntry struct {
	ID        int64
	BookingID int64
	Status    BookingStatus
	// ActorUserID пользователь, вызвавший переход
	ActorUserID int64
	Notes       *string
	CreatedAt   time.Time
}

// Канонические заметки истории для стандартных переходов
const (
	HistoryNoteCreated   = "Booking created"
	HistoryNoteCancelled = "Cancelled by customer"
	HistoryNoteApproved  = "Approved by manager"
	HistoryNoteRejected  = "Rejected by manager"
)
