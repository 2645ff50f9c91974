package autoorder

// AutoOrderNote marks orders the batch placed without per-day customer action.
const AutoOrderNote = "Auto-order from subscription"

// Summary is the batch result: how many orders were created for the day and
// the per-subscription/meal-type errors collected along the way. A non-empty
// error list does not mean the run failed; pairs are processed independently.
type Summary struct {
	Date          string   `json:"date"`
	OrdersCreated int      `json:"ordersCreated"`
	Skipped       int      `json:"skipped"`
	Errors        []string `json:"errors,omitempty"`
}
