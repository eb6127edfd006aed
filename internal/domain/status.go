package domain

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusApproved   BookingStatus = "approved"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusRejected   BookingStatus = "rejected"
)

// legalTransitions таблица допустимых переходов статусов
// Единственный источник истины для workflow бронирования:
//
//	pending  → approved | rejected | cancelled
//	approved → in_progress | cancelled
//	in_progress → completed
//
// completed, cancelled и rejected - терминальные статусы, из них переходов нет
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// TerminalStatuses статусы, из которых бронирование уже не выходит
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses статусы, при которых бронирование занимает место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusInProgress,
}

// AllStatuses все известные статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// CanTransition возвращает true, если переход from → to допустим
// Любой переход, не перечисленный в таблице, запрещен
func CanTransition(from, to BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для терминального статуса
func (s BookingStatus) IsTerminal() bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// IsValid возвращает true, если значение является известным статусом
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseBookingStatus преобразует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	return status, status.IsValid()
}
