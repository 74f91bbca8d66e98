package domain

type DebugCandidate struct {
	Aid              int64   `json:"aid"`
	CovisitScore     float64 `json:"covisit_score"`     // summed co-visit weight vs session history
	GlobalPopularity float64 `json:"global_popularity"` // interaction count across all sessions
	SessionLength    float64 `json:"session_length"`
	AidFrequency     float64 `json:"aid_frequency"` // occurrences of aid in this session
	ClicksScore      float64 `json:"clicks_score"`
	CartsScore       float64 `json:"carts_score"`
	OrdersScore      float64 `json:"orders_score"`
}
