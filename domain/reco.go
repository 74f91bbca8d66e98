package domain

// Recommendations is one ranked answer per funnel type for a single session.
// A list is empty when that type's model failed; the type is then listed in
// Degraded so callers can tell "no candidates" apart from "model down".
type Recommendations struct {
	SessionID int64    `json:"session_id"`
	Clicks    []int64  `json:"clicks"`
	Carts     []int64  `json:"carts"`
	Orders    []int64  `json:"orders"`
	Degraded  []string `json:"degraded,omitempty"`
}

// ByType returns the ranked aids for one funnel type, nil for unknown types.
func (r Recommendations) ByType(eventType string) []int64 {
	switch eventType {
	case EventClicks:
		return r.Clicks
	case EventCarts:
		return r.Carts
	case EventOrders:
		return r.Orders
	}
	return nil
}
