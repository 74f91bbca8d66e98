package domain

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Event types mirror the browsing funnel captured in the raw session logs.
const (
	EventClicks = "clicks"
	EventCarts  = "carts"
	EventOrders = "orders"
)

// EventTypes returns the funnel types in ranking order.
func EventTypes() []string {
	return []string{EventClicks, EventCarts, EventOrders}
}

type Event struct {
	Aid  int64  `json:"aid"`            // article id
	Ts   int64  `json:"ts,omitempty"`   // epoch millis
	Type string `json:"type,omitempty"` // clicks | carts | orders
}

type Session struct {
	SessionID int64   `json:"session"`
	Events    []Event `json:"events"`
}

// Aids returns the clicked/carted/ordered article ids in event order.
func (s Session) Aids() []int64 {
	aids := make([]int64, 0, len(s.Events))
	for _, ev := range s.Events {
		aids = append(aids, ev.Aid)
	}
	return aids
}

// SessionRecord is the persisted form of a session, events kept as jsonb.
type SessionRecord struct {
	SessionID int64          `gorm:"column:session_id;primaryKey" json:"session_id"`
	Events    datatypes.JSON `gorm:"column:events;type:jsonb" json:"events"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SessionRecord) TableName() string {
	return "sessions"
}

// JoinAids renders an aid list in the space-separated export format,
// e.g. "59625 1253524 737445".
func JoinAids(aids []int64) string {
	var sb strings.Builder
	for i, aid := range aids {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(aid, 10))
	}
	return sb.String()
}
