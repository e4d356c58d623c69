package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserDeleted    EventType = "user_deleted"
	EventPinRedeemed    EventType = "pin_redeemed"
	EventSessionStarted EventType = "session_started"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PinRedeemedPayload payload.
type PinRedeemedPayload struct {
	UserID string `json:"user_id"`
}

// SessionStartedPayload payload.
type SessionStartedPayload struct {
	SessionID string `json:"session_id"`
	Subject   string `json:"subject"`
}
