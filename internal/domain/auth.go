package domain

import (
	"fmt"
	"time"
)

// Role classifies a principal's authority. The set is closed; any other
// value coming out of a token is rejected during decode.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Principal is the authenticated caller derived from a verified token.
// It is rebuilt on every decode and never persisted.
type Principal struct {
	SubjectID string
	Role      Role
}

func (p Principal) String() string {
	return fmt.Sprintf("%s(%s)", p.SubjectID, p.Role)
}

// PinTicket binds a pairing PIN to the user that requested it. It lives
// only inside the PIN store; ExpiresAt is the authoritative logical
// expiry, independent of the store's physical TTL.
type PinTicket struct {
	Version   int       `json:"v"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PinTicketVersion is the current serialization version for PinTicket.
const PinTicketVersion = 1
