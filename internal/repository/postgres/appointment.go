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

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			request_id, patient_id, doctor_id, appointment_date,
			appointment_time, status, created_at, confirmed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	appt.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		appt.RequestID,
		appt.PatientID,
		appt.DoctorID,
		appt.Date,
		appt.Time,
		appt.Status,
		appt.CreatedAt,
		appt.ConfirmedAt,
	).Scan(&appt.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByRequest(ctx context.Context, requestID int64) (*model.Appointment, error) {
	query := `
		SELECT id, request_id, patient_id, doctor_id, appointment_date,
			   appointment_time, status, doctor_notes, created_at, confirmed_at
		FROM appointments
		WHERE request_id = $1
	`
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, query, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, a.request_id, a.patient_id, a.doctor_id,
			   a.appointment_date, a.appointment_time, a.status,
			   a.doctor_notes, a.created_at, a.confirmed_at,
			   p.full_name AS patient_name,
			   p.email AS patient_email,
			   d.name AS doctor_name,
			   d.specialty AS doctor_specialty
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`
	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
