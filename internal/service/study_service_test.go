package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-service/internal/domain"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

type fakeStudyRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.StudySession
	data     map[string][]*domain.StudyData
}

func newFakeStudyRepo() *fakeStudyRepo {
	return &fakeStudyRepo{
		sessions: make(map[string]*domain.StudySession),
		data:     make(map[string][]*domain.StudyData),
	}
}

func (r *fakeStudyRepo) CreateSession(_ context.Context, session *domain.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeStudyRepo) UpdateSession(_ context.Context, session *domain.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[session.ID]
	if !ok || existing.UserID != session.UserID {
		return pgx.ErrNoRows
	}
	session.UpdatedAt = time.Now()
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeStudyRepo) GetSessionByID(_ context.Context, userID, sessionID string) (*domain.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (r *fakeStudyRepo) ListSessions(_ context.Context, userID string, page, perPage int) (int, []*domain.StudySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions := make([]*domain.StudySession, 0)
	for _, session := range r.sessions {
		if session.UserID == userID {
			clone := *session
			sessions = append(sessions, &clone)
		}
	}
	total := len(sessions)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return total, sessions[start:end], nil
}

func (r *fakeStudyRepo) CreateData(_ context.Context, data *domain.StudyData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data.CreatedAt = time.Now()
	clone := *data
	r.data[data.SessionID] = append(r.data[data.SessionID], &clone)
	return nil
}

func (r *fakeStudyRepo) ListDataBySession(_ context.Context, userID, sessionID string) ([]*domain.StudyData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return append([]*domain.StudyData{}, r.data[sessionID]...), nil
}

func (r *fakeStudyRepo) DeleteSession(_ context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok || session.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.sessions, sessionID)
	delete(r.data, sessionID)
	return nil
}

func TestStartAndCompleteSession(t *testing.T) {
	svc := NewStudyService(newFakeStudyRepo(), nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "U1", "  math  ", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "math", session.Subject)
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.AvgFocus)

	avg := 72.5
	done, err := svc.CompleteSession(ctx, "U1", session.ID, time.Now(), &avg)
	require.NoError(t, err)
	require.NotNil(t, done.EndTime)
	require.NotNil(t, done.AvgFocus)
	assert.Equal(t, 72.5, *done.AvgFocus)
}

func TestStartSessionValidatesSubject(t *testing.T) {
	svc := NewStudyService(newFakeStudyRepo(), nil)
	ctx := context.Background()

	_, err := svc.StartSession(ctx, "U1", "   ", time.Time{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.StartSession(ctx, "U1", strings.Repeat("x", 11), time.Time{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRecordAndListSessionData(t *testing.T) {
	svc := NewStudyService(newFakeStudyRepo(), nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "U1", "reading", time.Time{})
	require.NoError(t, err)

	_, err = svc.RecordData(ctx, "U1", session.ID, 812.4, 64.2, time.Now())
	require.NoError(t, err)
	_, err = svc.RecordData(ctx, "U1", session.ID, 815.1, 70.8, time.Now())
	require.NoError(t, err)

	datas, err := svc.ListSessionData(ctx, "U1", session.ID)
	require.NoError(t, err)
	assert.Len(t, datas, 2)

	// another user cannot read or write into the session
	_, err = svc.RecordData(ctx, "U2", session.ID, 800, 50, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	_, err = svc.ListSessionData(ctx, "U2", session.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRecordDataUnknownSession(t *testing.T) {
	svc := NewStudyService(newFakeStudyRepo(), nil)

	_, err := svc.RecordData(context.Background(), "U1", "missing", 800, 50, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListSessionsPaginates(t *testing.T) {
	svc := NewStudyService(newFakeStudyRepo(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.StartSession(ctx, "U1", "math", time.Time{})
		require.NoError(t, err)
	}
	_, err := svc.StartSession(ctx, "U2", "music", time.Time{})
	require.NoError(t, err)

	total, page, err := svc.ListSessions(ctx, "U1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)
}

func TestDeleteSession(t *testing.T) {
	repo := newFakeStudyRepo()
	svc := NewStudyService(repo, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "U1", "math", time.Time{})
	require.NoError(t, err)

	err = svc.DeleteSession(ctx, "U2", session.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	require.NoError(t, svc.DeleteSession(ctx, "U1", session.ID))

	_, err = svc.ListSessionData(ctx, "U1", session.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}
