package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/study-service/internal/domain"
	"github.com/spec-kit/study-service/internal/events"
	"github.com/spec-kit/study-service/internal/repository"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

const maxSubjectLen = 10

// StudyService manages study sessions and the focus data recorded
// inside them on behalf of the session owner.
type StudyService struct {
	studies    repository.StudyRepository
	dispatcher events.Dispatcher
}

// NewStudyService builds the service.
func NewStudyService(studies repository.StudyRepository, dispatcher events.Dispatcher) *StudyService {
	return &StudyService{studies: studies, dispatcher: dispatcher}
}

// StartSession opens a new study session for the user.
func (s *StudyService) StartSession(ctx context.Context, userID, subject string, startTime time.Time) (*domain.StudySession, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject required", nil)
	}
	if len(subject) > maxSubjectLen {
		return nil, apperrors.NewValidationError("subject too long", nil)
	}
	if startTime.IsZero() {
		startTime = time.Now()
	}

	session := &domain.StudySession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Subject:   subject,
		StartTime: startTime,
	}
	if err := s.studies.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventSessionStarted,
		SubjectID: userID,
		Payload:   events.SessionStartedPayload{SessionID: session.ID, Subject: session.Subject},
	})
	return session, nil
}

// CompleteSession closes a session with its end time and the average
// focus computed over the recorded samples.
func (s *StudyService) CompleteSession(ctx context.Context, userID, sessionID string, endTime time.Time, avgFocus *float64) (*domain.StudySession, error) {
	session, err := s.getSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if endTime.IsZero() {
		endTime = time.Now()
	}
	session.EndTime = &endTime
	session.AvgFocus = avgFocus

	if err := s.studies.UpdateSession(ctx, session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("study session", nil)
		}
		return nil, err
	}
	return session, nil
}

// RecordData stores one focus sample against an owned session.
func (s *StudyService) RecordData(ctx context.Context, userID, sessionID string, ppgValue, focusScore float64, t time.Time) (*domain.StudyData, error) {
	if _, err := s.getSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	if t.IsZero() {
		t = time.Now()
	}
	data := &domain.StudyData{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		PpgValue:   ppgValue,
		FocusScore: focusScore,
		Time:       t,
	}
	if err := s.studies.CreateData(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ListSessions returns a page of the user's sessions together with
// the total count.
func (s *StudyService) ListSessions(ctx context.Context, userID string, page, perPage int) (int, []*domain.StudySession, error) {
	return s.studies.ListSessions(ctx, userID, page, perPage)
}

// ListSessionData returns all samples recorded in an owned session.
func (s *StudyService) ListSessionData(ctx context.Context, userID, sessionID string) ([]*domain.StudyData, error) {
	if _, err := s.getSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.studies.ListDataBySession(ctx, userID, sessionID)
}

// DeleteSession removes an owned session and its recorded data.
func (s *StudyService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := s.studies.DeleteSession(ctx, userID, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("study session", nil)
		}
		return err
	}
	return nil
}

func (s *StudyService) getSession(ctx context.Context, userID, sessionID string) (*domain.StudySession, error) {
	session, err := s.studies.GetSessionByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("study session", nil)
		}
		return nil, err
	}
	return session, nil
}

func (s *StudyService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
