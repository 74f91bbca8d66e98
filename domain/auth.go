package domain

import "time"

// OperatorToken is the issued-token record kept in redis so ops tokens can
// be revoked before their JWT expiry.
type OperatorToken struct {
	Operator  string    `json:"operator"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}
