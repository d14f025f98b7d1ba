package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
)

type sessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// sessionRow mirrors the sessions table; identity columns are nullable as a group.
type sessionRow struct {
	ID          string         `db:"id"`
	UserID      sql.NullInt64  `db:"user_id"`
	Username    sql.NullString `db:"username"`
	DisplayName sql.NullString `db:"display_name"`
	LoginTime   sql.NullTime   `db:"login_time"`
	CSRFToken   sql.NullString `db:"csrf_token"`
	CreatedAt   time.Time      `db:"created_at"`
	ExpiresAt   time.Time      `db:"expires_at"`
}

func (row *sessionRow) toDomain() *domain.Session {
	s := &domain.Session{
		ID:        row.ID,
		CSRFToken: row.CSRFToken.String,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
	if row.UserID.Valid && row.Username.Valid && row.DisplayName.Valid && row.LoginTime.Valid {
		s.Identity = &domain.Identity{
			UserID:      row.UserID.Int64,
			Username:    row.Username.String,
			DisplayName: row.DisplayName.String,
			LoginTime:   row.LoginTime.Time,
		}
	}
	return s
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := r.db.Rebind(`
		INSERT INTO sessions (id, user_id, username, display_name, login_time, csrf_token, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	var (
		userID      sql.NullInt64
		username    sql.NullString
		displayName sql.NullString
		loginTime   sql.NullTime
	)
	if id := session.Identity; id != nil {
		userID = NullInt64(&id.UserID)
		username = sql.NullString{String: id.Username, Valid: true}
		displayName = sql.NullString{String: id.DisplayName, Valid: true}
		loginTime = sql.NullTime{Time: id.LoginTime, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		userID,
		username,
		displayName,
		loginTime,
		NullString(session.CSRFToken),
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("session %s: %w", session.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, username, display_name, login_time, csrf_token, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`)
	var row sessionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return row.toDomain(), nil
}

func (r *sessionRepository) UpdateCSRFToken(ctx context.Context, id, token string) (bool, error) {
	query := r.db.Rebind(`UPDATE sessions SET csrf_token = ? WHERE id = ? AND csrf_token IS NULL`)
	result, err := r.db.ExecContext(ctx, query, token, id)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(`DELETE FROM sessions WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) error {
	query := r.db.Rebind(`DELETE FROM sessions WHERE expires_at < ?`)
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
