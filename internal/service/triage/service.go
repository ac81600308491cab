package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/notifier"
	"github.com/swasth/triage-api/internal/repository"
	"github.com/swasth/triage-api/internal/triage"
	apperrors "github.com/swasth/triage-api/pkg/errors"
	"github.com/swasth/triage-api/pkg/metrics"
)

const (
	emergencyMessage = "Emergency case detected. Please seek immediate medical attention. Call emergency services: 108 or 112"
	noDoctorMessage  = "No available doctors found for this specialty. Admin will be notified."
	assignedMessage  = "Request submitted successfully. Doctor will be notified."
)

// Service is the triage orchestrator. It owns every mutation of a
// PatientRequest after submission: classification, emergency
// escalation, doctor assignment, confirmation and decline.
type Service struct {
	classifier   triage.Classifier
	requests     repository.RequestRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	admins       repository.AdminRepository
	notifier     notifier.Notifier
	baseURL      string
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

func NewService(
	classifier triage.Classifier,
	requests repository.RequestRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	appointments repository.AppointmentRepository,
	admins repository.AdminRepository,
	n notifier.Notifier,
	baseURL string,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		classifier:   classifier,
		requests:     requests,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		admins:       admins,
		notifier:     n,
		baseURL:      baseURL,
		metrics:      m,
		logger:       logger,
	}
}

// ProcessRequest runs the full triage pipeline for one submission:
// persist, classify, escalate or assign, notify. It is called exactly
// once per submission, synchronously. Notification failures never
// abort the pipeline; they are recorded and processing continues.
func (s *Service) ProcessRequest(ctx context.Context, submit *model.SubmitRequestRequest) (*model.TriageOutcome, error) {
	if submit.Consent == nil || !*submit.Consent {
		return nil, apperrors.BadRequest("consent is required to proceed", nil)
	}

	started := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.TriageDuration.Observe(time.Since(started).Seconds())
		}
	}()

	patient, err := s.patients.Get(ctx, submit.PatientID)
	if err != nil {
		return nil, err
	}

	redFlags := submit.RedFlags != nil && *submit.RedFlags

	req := &model.PatientRequest{
		PatientID:   patient.ID,
		Symptoms:    submit.Symptoms,
		Duration:    submit.Duration,
		Severity:    submit.Severity,
		RedFlags:    redFlags,
		Medications: submit.Medications,
		Consent:     true,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to persist request: %w", err)
	}

	// The classifier never fails; model errors resolve to rules.
	result := s.classifier.Classify(ctx, req.Report())

	if err := s.requests.SaveClassification(ctx, req.ID, result); err != nil {
		return nil, fmt.Errorf("failed to save classification: %w", err)
	}
	req.Status = model.RequestStatusAnalyzed

	if result.SeverityLevel == model.SeverityEmergency {
		return s.escalateEmergency(ctx, req, patient, result)
	}
	return s.assignDoctor(ctx, req, patient, result)
}

// escalateEmergency is the terminal, assignment-bypassing branch: the
// case always requires human administrative handling.
func (s *Service) escalateEmergency(ctx context.Context, req *model.PatientRequest, patient *model.Patient, result model.ClassificationResult) (*model.TriageOutcome, error) {
	if err := s.transition(ctx, req, model.RequestStatusEmergency); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.EmergencyCases.Inc()
	}
	s.logger.Warn().
		Int64("request_id", req.ID).
		Int("severity", req.Severity).
		Msg("emergency case detected")

	admin, err := s.admins.First(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int64("request_id", req.ID).Msg("no admin account for emergency alert")
	} else if err := s.notifier.NotifyAdminEmergency(ctx, admin.Email, notifier.EmergencyAlert{
		PatientName:   patient.FullName,
		PatientEmail:  patient.Email,
		PatientPhone:  patient.Phone,
		Symptoms:      req.Symptoms,
		Severity:      req.Severity,
		SeverityLevel: result.SeverityLevel,
	}); err != nil {
		s.logger.Error().Err(err).Int64("request_id", req.ID).Msg("emergency alert delivery failed")
	}

	return &model.TriageOutcome{
		RequestID: req.ID,
		Emergency: true,
		Message:   emergencyMessage,
		Analysis:  &result,
	}, nil
}

func (s *Service) assignDoctor(ctx context.Context, req *model.PatientRequest, patient *model.Patient, result model.ClassificationResult) (*model.TriageOutcome, error) {
	doctor, err := s.doctors.FindAvailableBySpecialty(ctx, result.SuggestedSpecialty)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible doctors: %w", err)
	}

	noDoctor := &model.TriageOutcome{
		RequestID: req.ID,
		Message:   noDoctorMessage,
		Analysis:  &result,
	}

	if doctor == nil {
		// Valid outcome, not an error: the request stays ANALYZED.
		if s.metrics != nil {
			s.metrics.DoctorAssignments.WithLabelValues("none_available").Inc()
		}
		s.logger.Info().
			Int64("request_id", req.ID).
			Str("specialty", string(result.SuggestedSpecialty)).
			Msg("no eligible doctor for specialty")
		return noDoctor, nil
	}

	if err := s.requests.AssignDoctor(ctx, req.ID, doctor.ID); err != nil {
		// A concurrent submission may have claimed the doctor; the
		// request stays ANALYZED, same as the empty eligible set.
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrConflict {
			if s.metrics != nil {
				s.metrics.DoctorAssignments.WithLabelValues("lost_race").Inc()
			}
			s.logger.Info().Int64("request_id", req.ID).Int64("doctor_id", doctor.ID).Msg("doctor claimed concurrently")
			return noDoctor, nil
		}
		return nil, fmt.Errorf("failed to assign doctor: %w", err)
	}
	req.Status = model.RequestStatusDoctorAssigned
	req.AssignedDoctorID = &doctor.ID

	if s.metrics != nil {
		s.metrics.DoctorAssignments.WithLabelValues("assigned").Inc()
	}

	if err := s.notifier.NotifyDoctor(ctx, doctor.Email, notifier.DoctorAssignment{
		RequestID:     req.ID,
		PatientName:   patient.FullName,
		PatientEmail:  patient.Email,
		PatientPhone:  patient.Phone,
		Symptoms:      req.Symptoms,
		Duration:      req.Duration,
		Severity:      req.Severity,
		SeverityLevel: result.SeverityLevel,
		Medications:   req.Medications,
		RedFlags:      req.RedFlags,
		ConfirmURL:    fmt.Sprintf("%s/api/v1/appointments/confirm/%d", s.baseURL, req.ID),
		DeclineURL:    fmt.Sprintf("%s/api/v1/appointments/decline/%d", s.baseURL, req.ID),
	}); err != nil {
		// Status has already advanced; the failure stays in the audit
		// trail and is never retried.
		s.logger.Error().Err(err).Int64("request_id", req.ID).Msg("doctor notification failed")
	}

	return &model.TriageOutcome{
		RequestID: req.ID,
		Message:   assignedMessage,
		Doctor: &model.AssignedDoctor{
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
		},
		Analysis: &result,
	}, nil
}

// ConfirmWithSchedule finalizes a doctor-assigned request: it creates
// the single Appointment, moves the request to CONFIRMED and notifies
// the patient.
func (s *Service) ConfirmWithSchedule(ctx context.Context, requestID int64, dateStr, timeStr string) (*model.Appointment, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.AssignedDoctorID == nil || !req.Status.CanTransition(model.RequestStatusConfirmed) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("request in status %s cannot be confirmed", req.Status), nil)
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}
	apptTime, err := time.Parse("15:04", timeStr)
	if err != nil {
		return nil, apperrors.BadRequest("invalid time, expected HH:MM", err)
	}

	doctor, err := s.doctors.Get(ctx, *req.AssignedDoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	appt := &model.Appointment{
		RequestID:   req.ID,
		PatientID:   req.PatientID,
		DoctorID:    doctor.ID,
		Date:        date,
		Time:        timeStr,
		Status:      model.AppointmentStatusConfirmed,
		ConfirmedAt: &now,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.transition(ctx, req, model.RequestStatusConfirmed); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyPatient(ctx, patient.Email, notifier.PatientConfirmation{
		AppointmentID: appt.ID,
		PatientName:   patient.FullName,
		DoctorName:    doctor.Name,
		Specialty:     doctor.Specialty,
		Hospital:      doctor.Hospital,
		Location:      doctor.Location,
		DoctorPhone:   doctor.Phone,
		Date:          date.Format("Monday, January 2, 2006"),
		Time:          apptTime.Format("03:04 PM"),
	}); err != nil {
		s.logger.Error().Err(err).Int64("request_id", req.ID).Msg("patient confirmation delivery failed")
	}

	return appt, nil
}

// Decline cancels a doctor-assigned request. No appointment is
// created and no automatic reassignment is attempted.
func (s *Service) Decline(ctx context.Context, requestID int64) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.CanTransition(model.RequestStatusCancelled) {
		return apperrors.Conflict(
			fmt.Sprintf("request in status %s cannot be declined", req.Status), nil)
	}
	return s.transition(ctx, req, model.RequestStatusCancelled)
}

// ConfirmationContext returns the request detail a doctor needs to
// pick a date and time, the data behind the confirm link.
func (s *Service) ConfirmationContext(ctx context.Context, requestID int64) (*model.PatientRequest, *model.Patient, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return nil, nil, err
	}
	return req, patient, nil
}

// transition guards every status write with the state machine.
func (s *Service) transition(ctx context.Context, req *model.PatientRequest, next model.RequestStatus) error {
	if !req.Status.CanTransition(next) {
		return apperrors.Conflict(
			fmt.Sprintf("illegal transition %s -> %s", req.Status, next), nil)
	}
	if err := s.requests.UpdateStatus(ctx, req.ID, next); err != nil {
		return fmt.Errorf("failed to transition request to %s: %w", next, err)
	}
	req.Status = next
	return nil
}
