package dto

import (
	"time"

	"github.com/spec-kit/study-service/internal/domain"
)

// StartSessionRequest payload for opening a session.
type StartSessionRequest struct {
	Subject   string    `json:"subject"`
	StartTime time.Time `json:"start_time"`
}

// CompleteSessionRequest payload for closing a session.
type CompleteSessionRequest struct {
	SessionID string    `json:"session_id"`
	AvgFocus  *float64  `json:"avg_focus,omitempty"`
	EndTime   time.Time `json:"end_time"`
}

// RecordDataRequest payload for one focus sample.
type RecordDataRequest struct {
	SessionID  string    `json:"session_id"`
	PpgValue   float64   `json:"ppg_value"`
	FocusScore float64   `json:"focus_score"`
	Time       time.Time `json:"time"`
}

// SessionResponse is the public view of a study session.
type SessionResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Subject   string     `json:"subject"`
	AvgFocus  *float64   `json:"avg_focus,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSessionResponse maps the domain model.
func NewSessionResponse(session *domain.StudySession) SessionResponse {
	return SessionResponse{
		ID:        session.ID,
		UserID:    session.UserID,
		Subject:   session.Subject,
		AvgFocus:  session.AvgFocus,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

// DataResponse is the public view of a focus sample.
type DataResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	PpgValue   float64   `json:"ppg_value"`
	FocusScore float64   `json:"focus_score"`
	Time       time.Time `json:"time"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDataResponse maps the domain model.
func NewDataResponse(data *domain.StudyData) DataResponse {
	return DataResponse{
		ID:         data.ID,
		SessionID:  data.SessionID,
		PpgValue:   data.PpgValue,
		FocusScore: data.FocusScore,
		Time:       data.Time,
		CreatedAt:  data.CreatedAt,
	}
}

// SessionsPageResponse is a paginated session listing.
type SessionsPageResponse struct {
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	Sessions   []SessionResponse `json:"sessions"`
}

// SessionDataResponse lists a session's recorded samples.
type SessionDataResponse struct {
	SessionID string         `json:"session_id"`
	Data      []DataResponse `json:"data"`
}
