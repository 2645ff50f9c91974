package ordering

import (
	"fmt"
	"time"
)

const (
	// VisibilityGrace keeps a meal visible to customers for a short while
	// after ordering has closed. It never extends orderability.
	VisibilityGrace = 15 * time.Minute

	// CancellationLockout is the final stretch before cutoff during which an
	// already-placed order can no longer be canceled.
	CancellationLockout = 15 * time.Minute

	urgentThreshold  = 15 * time.Minute
	warningThreshold = 30 * time.Minute
)

const (
	StatusOpen        = "open"
	StatusClosingSoon = "closing_soon"
	StatusClosed      = "closed"

	UrgencyNormal  = "normal"
	UrgencyWarning = "warning"
	UrgencyUrgent  = "urgent"
)

// TimeStatus describes how close a meal is to its cutoff, for display only.
// Orderability is decided by OrderingAllowed, never by these fields.
type TimeStatus struct {
	Status   string `json:"status"`
	TimeLeft string `json:"time_left"`
	Urgency  string `json:"urgency"`
}

// ParseCutoff parses a wall-clock "HH:MM" cutoff string.
func ParseCutoff(cutoff string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cutoff time %q: %w", cutoff, err)
	}
	return t.Hour(), t.Minute(), nil
}

// CutoffAt combines a meal date ("2006-01-02") and cutoff ("HH:MM") into a
// timestamp in the given location.
func CutoffAt(mealDate, cutoff string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", mealDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid meal date %q: %w", mealDate, err)
	}
	hour, minute, err := ParseCutoff(cutoff)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// OrderingAllowed reports whether an order may still be placed for the meal:
// now must be strictly before the cutoff timestamp and the meal must be for
// today. The boundary is exclusive: at the cutoff minute ordering is closed.
func OrderingAllowed(mealDate, cutoff string, now time.Time) bool {
	if mealDate != now.Format("2006-01-02") {
		return false
	}
	at, err := CutoffAt(mealDate, cutoff, now.Location())
	if err != nil {
		return false
	}
	return now.Before(at)
}

// VisibleToCustomer reports whether the meal should still be listed for
// customers. Visibility extends VisibilityGrace past cutoff; a visible meal
// is not necessarily orderable.
func VisibleToCustomer(mealDate, cutoff string, now time.Time) bool {
	at, err := CutoffAt(mealDate, cutoff, now.Location())
	if err != nil {
		return false
	}
	return now.Before(at.Add(VisibilityGrace))
}

// CancellationAllowed reports whether an order for the meal may still be
// canceled: more than CancellationLockout must remain before cutoff.
func CancellationAllowed(mealDate, cutoff string, now time.Time) bool {
	at, err := CutoffAt(mealDate, cutoff, now.Location())
	if err != nil {
		return false
	}
	return at.Sub(now) > CancellationLockout
}

// MealEditable reports whether the provider may still change or delete the
// meal. Unlike ordering this is not restricted to today: a future-dated meal
// stays editable until its cutoff passes.
func MealEditable(mealDate, cutoff string, now time.Time) bool {
	at, err := CutoffAt(mealDate, cutoff, now.Location())
	if err != nil {
		return false
	}
	return now.Before(at)
}

// Status computes the display status for a meal relative to now.
func Status(mealDate, cutoff string, now time.Time) TimeStatus {
	today := now.Format("2006-01-02")
	if mealDate != today {
		left := "Future date"
		if mealDate < today {
			left = "Past date"
		}
		return TimeStatus{Status: StatusClosed, TimeLeft: left, Urgency: UrgencyNormal}
	}

	at, err := CutoffAt(mealDate, cutoff, now.Location())
	if err != nil || !now.Before(at) {
		return TimeStatus{Status: StatusClosed, TimeLeft: "Ordering closed", Urgency: UrgencyNormal}
	}

	diff := at.Sub(now)
	hoursLeft := int(diff / time.Hour)
	minutesLeft := int(diff % time.Hour / time.Minute)

	var timeLeft string
	urgency := UrgencyNormal
	if hoursLeft > 0 {
		timeLeft = fmt.Sprintf("%dh %dm left", hoursLeft, minutesLeft)
		if hoursLeft == 1 {
			urgency = UrgencyWarning
		}
	} else {
		timeLeft = fmt.Sprintf("%dm left", minutesLeft)
		switch {
		case diff <= urgentThreshold:
			urgency = UrgencyUrgent
		case diff <= warningThreshold:
			urgency = UrgencyWarning
		}
	}

	status := StatusOpen
	if urgency == UrgencyUrgent {
		status = StatusClosingSoon
	}
	return TimeStatus{Status: status, TimeLeft: timeLeft, Urgency: urgency}
}
