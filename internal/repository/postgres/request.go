package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/swasth/triage-api/internal/model"
	apperrors "github.com/swasth/triage-api/pkg/errors"
)

const requestColumns = `id, patient_id, symptoms, duration, severity, red_flags,
	   medications, consent, analysis, suggested_specialty, severity_level,
	   status, assigned_doctor_id, created_at, analyzed_at`

func (r *requestRepository) Create(ctx context.Context, req *model.PatientRequest) error {
	query := `
		INSERT INTO patient_requests (
			patient_id, symptoms, duration, severity, red_flags,
			medications, consent, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	req.Status = model.RequestStatusPendingAnalysis
	req.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		req.PatientID,
		req.Symptoms,
		req.Duration,
		req.Severity,
		req.RedFlags,
		req.Medications,
		req.Consent,
		req.Status,
		req.CreatedAt,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *requestRepository) Get(ctx context.Context, id int64) (*model.PatientRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM patient_requests WHERE id = $1`, requestColumns)

	var req model.PatientRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("request", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &req, nil
}

func (r *requestRepository) SaveClassification(ctx context.Context, id int64, result model.ClassificationResult) error {
	query := `
		UPDATE patient_requests
		SET analysis = $1, suggested_specialty = $2, severity_level = $3,
			status = $4, analyzed_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		result.Analysis,
		result.SuggestedSpecialty,
		result.SeverityLevel,
		model.RequestStatusAnalyzed,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("request", nil)
	}
	return nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	query := `UPDATE patient_requests SET status = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("request", nil)
	}
	return nil
}

// AssignDoctor re-checks eligibility and writes the assignment inside
// one transaction so two concurrent submissions cannot both claim a
// doctor who went unavailable in between.
func (r *requestRepository) AssignDoctor(ctx context.Context, id, doctorID int64) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var eligible bool
		err := tx.GetContext(ctx, &eligible, `
			SELECT status = 'active' AND availability = 'available'
			FROM doctors WHERE id = $1 FOR UPDATE
		`, doctorID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("doctor", err)
		}
		if err != nil {
			return fmt.Errorf("failed to lock doctor row: %w", err)
		}
		if !eligible {
			return apperrors.Conflict("doctor no longer available", nil)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE patient_requests
			SET assigned_doctor_id = $1, status = $2
			WHERE id = $3
		`, doctorID, model.RequestStatusDoctorAssigned, id)
		if err != nil {
			return fmt.Errorf("failed to assign doctor: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("request", nil)
		}
		return nil
	})
}

const requestDetailQuery = `
	SELECT pr.id, pr.patient_id, pr.symptoms, pr.duration, pr.severity,
		   pr.red_flags, pr.medications, pr.consent, pr.analysis,
		   pr.suggested_specialty, pr.severity_level, pr.status,
		   pr.assigned_doctor_id, pr.created_at, pr.analyzed_at,
		   p.full_name AS patient_name,
		   p.email AS patient_email,
		   p.phone AS patient_phone,
		   d.name AS doctor_name,
		   d.specialty AS doctor_specialty,
		   a.appointment_date,
		   a.appointment_time,
		   a.status AS appointment_status
	FROM patient_requests pr
	JOIN patients p ON pr.patient_id = p.id
	LEFT JOIN doctors d ON pr.assigned_doctor_id = d.id
	LEFT JOIN appointments a ON a.request_id = pr.id
`

func (r *requestRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.RequestDetail, error) {
	query := requestDetailQuery + ` WHERE pr.patient_id = $1 ORDER BY pr.created_at DESC`

	var requests []*model.RequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]*model.RequestDetail, error) {
	query := requestDetailQuery + ` ORDER BY pr.created_at DESC`

	var requests []*model.RequestDetail
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patient_requests`); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

func (r *requestRepository) CountByStatuses(ctx context.Context, statuses ...model.RequestStatus) (int64, error) {
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM patient_requests WHERE status IN (?)`, statuses)
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count requests by status: %w", err)
	}
	return count, nil
}

func (r *requestRepository) CountEmergencies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM patient_requests WHERE severity_level = $1`, model.SeverityEmergency)
	if err != nil {
		return 0, fmt.Errorf("failed to count emergencies: %w", err)
	}
	return count, nil
}
