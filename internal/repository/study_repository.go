package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/study-service/internal/domain"
)

// StudyRepository defines persistence access for study sessions and
// their focus data. Every query is scoped to the owning user so a
// session id alone never crosses account boundaries.
type StudyRepository interface {
	CreateSession(ctx context.Context, session *domain.StudySession) error
	UpdateSession(ctx context.Context, session *domain.StudySession) error
	GetSessionByID(ctx context.Context, userID, sessionID string) (*domain.StudySession, error)
	ListSessions(ctx context.Context, userID string, page, perPage int) (int, []*domain.StudySession, error)
	CreateData(ctx context.Context, data *domain.StudyData) error
	ListDataBySession(ctx context.Context, userID, sessionID string) ([]*domain.StudyData, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
}

type studyRepository struct {
	pool *pgxpool.Pool
}

// NewStudyRepository returns a Postgres-backed implementation.
func NewStudyRepository(pool *pgxpool.Pool) StudyRepository {
	return &studyRepository{pool: pool}
}

func (r *studyRepository) CreateSession(ctx context.Context, session *domain.StudySession) error {
	const query = `
        INSERT INTO study_sessions (id, user_id, subject, avg_focus, start_time, end_time)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.Subject,
		session.AvgFocus,
		session.StartTime,
		session.EndTime,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
}

func (r *studyRepository) UpdateSession(ctx context.Context, session *domain.StudySession) error {
	const query = `
        UPDATE study_sessions SET avg_focus=$1, end_time=$2, updated_at=NOW()
        WHERE id=$3 AND user_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		session.AvgFocus,
		session.EndTime,
		session.ID,
		session.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studyRepository) GetSessionByID(ctx context.Context, userID, sessionID string) (*domain.StudySession, error) {
	const query = `
        SELECT id, user_id, subject, avg_focus, start_time, end_time, created_at, updated_at
        FROM study_sessions WHERE id=$1 AND user_id=$2`

	var session domain.StudySession
	if err := r.pool.QueryRow(ctx, query, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Subject,
		&session.AvgFocus,
		&session.StartTime,
		&session.EndTime,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *studyRepository) ListSessions(ctx context.Context, userID string, page, perPage int) (int, []*domain.StudySession, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM study_sessions WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return 0, nil, err
	}

	const query = `
        SELECT id, user_id, subject, avg_focus, start_time, end_time, created_at, updated_at
        FROM study_sessions WHERE user_id=$1 ORDER BY start_time DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.StudySession, 0, perPage)
	for rows.Next() {
		var session domain.StudySession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Subject,
			&session.AvgFocus,
			&session.StartTime,
			&session.EndTime,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return 0, nil, err
		}
		sessions = append(sessions, &session)
	}
	return total, sessions, rows.Err()
}

func (r *studyRepository) CreateData(ctx context.Context, data *domain.StudyData) error {
	const query = `
        INSERT INTO study_data (id, session_id, ppg_value, focus_score, time)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		data.ID,
		data.SessionID,
		data.PpgValue,
		data.FocusScore,
		data.Time,
	).Scan(&data.CreatedAt)
}

func (r *studyRepository) ListDataBySession(ctx context.Context, userID, sessionID string) ([]*domain.StudyData, error) {
	const query = `
        SELECT d.id, d.session_id, d.ppg_value, d.focus_score, d.time, d.created_at
        FROM study_data d
        JOIN study_sessions s ON s.id = d.session_id
        WHERE d.session_id=$1 AND s.user_id=$2
        ORDER BY d.time ASC`

	rows, err := r.pool.Query(ctx, query, sessionID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	datas := make([]*domain.StudyData, 0)
	for rows.Next() {
		var data domain.StudyData
		if err := rows.Scan(
			&data.ID,
			&data.SessionID,
			&data.PpgValue,
			&data.FocusScore,
			&data.Time,
			&data.CreatedAt,
		); err != nil {
			return nil, err
		}
		datas = append(datas, &data)
	}
	return datas, rows.Err()
}

func (r *studyRepository) DeleteSession(ctx context.Context, userID, sessionID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM study_sessions WHERE id=$1 AND user_id=$2`, sessionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
