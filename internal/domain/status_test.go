package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusInProgress},
		{StatusApproved, StatusCancelled},
		{StatusInProgress, StatusCompleted},
	}

	allowedSet := make(map[[2]BookingStatus]bool)
	for _, tc := range allowed {
		allowedSet[[2]BookingStatus{tc.from, tc.to}] = true
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s must be allowed", tc.from, tc.to)
	}

	// Всё, что не перечислено явно, запрещено
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			if allowedSet[[2]BookingStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s must be forbidden", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, terminal := range TerminalStatuses {
		assert.True(t, terminal.IsTerminal())
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, ok := ParseBookingStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	_, ok := ParseBookingStatus("archived")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)

	// Статусы чувствительны к регистру
	_, ok = ParseBookingStatus("Pending")
	assert.False(t, ok)
}

func TestBookingStateChecks(t *testing.T) {
	t.Run("CanBeCancelled", func(t *testing.T) {
		assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
		assert.True(t, (&Booking{Status: StatusApproved}).CanBeCancelled())
		assert.False(t, (&Booking{Status: StatusInProgress}).CanBeCancelled())
		assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	})

	t.Run("CanBeRescheduled", func(t *testing.T) {
		assert.True(t, (&Booking{Status: StatusPending}).CanBeRescheduled())
		assert.True(t, (&Booking{Status: StatusApproved}).CanBeRescheduled())
		assert.False(t, (&Booking{Status: StatusInProgress}).CanBeRescheduled())
		assert.False(t, (&Booking{Status: StatusCancelled}).CanBeRescheduled())
	})
}
