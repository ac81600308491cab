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

const doctorColumns = `id, name, phone, email, specialty, location, hospital,
	   status, availability, created_at, approved_at, approved_by`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, phone, email, specialty, location, hospital, status, availability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	doctor.CreatedAt = time.Now()
	if doctor.Status == "" {
		doctor.Status = model.DoctorStatusPending
	}
	if doctor.Availability == "" {
		doctor.Availability = model.DoctorAvailable
	}

	err := r.db.QueryRowContext(ctx, query,
		doctor.Name,
		doctor.Phone,
		doctor.Email,
		doctor.Specialty,
		doctor.Location,
		doctor.Hospital,
		doctor.Status,
		doctor.Availability,
		doctor.CreatedAt,
	).Scan(&doctor.ID)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors WHERE id = $1`, doctorColumns)

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors WHERE email = $1`, doctorColumns)

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

// FindAvailableBySpecialty picks uniformly at random among eligible
// doctors. Returns nil, nil when the eligible set is empty.
func (r *doctorRepository) FindAvailableBySpecialty(ctx context.Context, specialty model.Specialty) (*model.Doctor, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM doctors
		WHERE specialty = $1 AND status = $2 AND availability = $3
		ORDER BY random()
		LIMIT 1
	`, doctorColumns)

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, specialty, model.DoctorStatusActive, model.DoctorAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find available doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id int64, status model.DoctorStatus, approvedBy *int64) error {
	query := `
		UPDATE doctors
		SET status = $1,
			approved_at = CASE WHEN $1 = 'active' THEN $2 ELSE approved_at END,
			approved_by = CASE WHEN $1 = 'active' THEN $3 ELSE approved_by END
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), approvedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update doctor status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) UpdateAvailability(ctx context.Context, id int64, availability model.DoctorAvailability) error {
	query := `UPDATE doctors SET availability = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, availability, id)
	if err != nil {
		return fmt.Errorf("failed to update doctor availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors ORDER BY created_at DESC`, doctorColumns)

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) CountByStatus(ctx context.Context, status model.DoctorStatus) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}
