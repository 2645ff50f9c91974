package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	assert.NoError(t, err)
	return ts
}

func TestParseCutoff(t *testing.T) {
	hour, minute, err := ParseCutoff("11:00")
	assert.NoError(t, err)
	assert.Equal(t, 11, hour)
	assert.Equal(t, 0, minute)

	_, _, err = ParseCutoff("25:00")
	assert.Error(t, err)

	_, _, err = ParseCutoff("eleven")
	assert.Error(t, err)
}

func TestOrderingAllowedBoundary(t *testing.T) {
	// one minute before cutoff: open
	assert.True(t, OrderingAllowed("2025-03-10", "11:00", at(t, "2025-03-10 10:59")))
	// the cutoff minute itself: closed
	assert.False(t, OrderingAllowed("2025-03-10", "11:00", at(t, "2025-03-10 11:00")))
	assert.False(t, OrderingAllowed("2025-03-10", "11:00", at(t, "2025-03-10 11:01")))
}

func TestOrderingAllowedOnlyForToday(t *testing.T) {
	// tomorrow's meal cannot be ordered today, even well before its cutoff
	assert.False(t, OrderingAllowed("2025-03-11", "11:00", at(t, "2025-03-10 08:00")))
	// nor yesterday's
	assert.False(t, OrderingAllowed("2025-03-09", "11:00", at(t, "2025-03-10 08:00")))
}

func TestVisibleToCustomerGrace(t *testing.T) {
	// still visible 14 minutes after cutoff
	assert.True(t, VisibleToCustomer("2025-03-10", "11:00", at(t, "2025-03-10 11:14")))
	// gone at 15 minutes past
	assert.False(t, VisibleToCustomer("2025-03-10", "11:00", at(t, "2025-03-10 11:15")))

	// visible but no longer orderable inside the grace window
	now := at(t, "2025-03-10 11:05")
	assert.True(t, VisibleToCustomer("2025-03-10", "11:00", now))
	assert.False(t, OrderingAllowed("2025-03-10", "11:00", now))
}

func TestCancellationAllowedLockout(t *testing.T) {
	// 16 minutes before cutoff: still cancelable
	assert.True(t, CancellationAllowed("2025-03-10", "11:00", at(t, "2025-03-10 10:44")))
	// exactly 15 minutes before: locked
	assert.False(t, CancellationAllowed("2025-03-10", "11:00", at(t, "2025-03-10 10:45")))
	// 14 minutes before: locked
	assert.False(t, CancellationAllowed("2025-03-10", "11:00", at(t, "2025-03-10 10:46")))
	// after cutoff: locked
	assert.False(t, CancellationAllowed("2025-03-10", "11:00", at(t, "2025-03-10 12:00")))
}

func TestMealEditableIgnoresDate(t *testing.T) {
	// future meal stays editable until its own cutoff
	assert.True(t, MealEditable("2025-03-12", "11:00", at(t, "2025-03-10 18:00")))
	// past cutoff locks editing
	assert.False(t, MealEditable("2025-03-10", "11:00", at(t, "2025-03-10 11:00")))
}

func TestStatusBuckets(t *testing.T) {
	// plenty of time
	s := Status("2025-03-10", "11:00", at(t, "2025-03-10 08:30"))
	assert.Equal(t, StatusOpen, s.Status)
	assert.Equal(t, "2h 30m left", s.TimeLeft)
	assert.Equal(t, UrgencyNormal, s.Urgency)

	// under an hour
	s = Status("2025-03-10", "11:00", at(t, "2025-03-10 10:15"))
	assert.Equal(t, StatusOpen, s.Status)
	assert.Equal(t, "45m left", s.TimeLeft)
	assert.Equal(t, UrgencyNormal, s.Urgency)

	// warning bucket
	s = Status("2025-03-10", "11:00", at(t, "2025-03-10 10:35"))
	assert.Equal(t, UrgencyWarning, s.Urgency)

	// urgent bucket
	s = Status("2025-03-10", "11:00", at(t, "2025-03-10 10:50"))
	assert.Equal(t, StatusClosingSoon, s.Status)
	assert.Equal(t, UrgencyUrgent, s.Urgency)

	// closed
	s = Status("2025-03-10", "11:00", at(t, "2025-03-10 11:00"))
	assert.Equal(t, StatusClosed, s.Status)
	assert.Equal(t, "Ordering closed", s.TimeLeft)

	// other days
	assert.Equal(t, "Future date", Status("2025-03-11", "11:00", at(t, "2025-03-10 09:00")).TimeLeft)
	assert.Equal(t, "Past date", Status("2025-03-09", "11:00", at(t, "2025-03-10 09:00")).TimeLeft)
}
