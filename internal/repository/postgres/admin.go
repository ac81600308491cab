package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swasth/triage-api/internal/model"
	apperrors "github.com/swasth/triage-api/pkg/errors"
)

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, created_at
		FROM admins
		WHERE email = $1
	`
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("admin", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// First returns the oldest admin account, the recipient of emergency
// alerts.
func (r *adminRepository) First(ctx context.Context) (*model.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, created_at
		FROM admins
		ORDER BY id
		LIMIT 1
	`
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("admin", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

func (r *emailLogRepository) Create(ctx context.Context, log *model.EmailLog) error {
	query := `
		INSERT INTO email_logs (recipient, subject, kind, status, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	log.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		log.Recipient,
		log.Subject,
		log.Kind,
		log.Status,
		log.ErrorMessage,
		log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to create email log: %w", err)
	}
	return nil
}

func (r *emailLogRepository) ListRecent(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, recipient, subject, kind, status, error_message, created_at
		FROM email_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	var logs []*model.EmailLog
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	return logs, nil
}
