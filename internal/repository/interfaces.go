package repository

import (
	"context"

	"github.com/swasth/triage-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		TouchLastLogin(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Patient, error)
		Count(ctx context.Context) (int64, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		// FindAvailableBySpecialty picks one eligible doctor at random,
		// or returns nil when none exists.
		FindAvailableBySpecialty(ctx context.Context, specialty model.Specialty) (*model.Doctor, error)
		UpdateStatus(ctx context.Context, id int64, status model.DoctorStatus, approvedBy *int64) error
		UpdateAvailability(ctx context.Context, id int64, availability model.DoctorAvailability) error
		List(ctx context.Context) ([]*model.Doctor, error)
		CountByStatus(ctx context.Context, status model.DoctorStatus) (int64, error)
	}

	RequestRepository interface {
		Create(ctx context.Context, req *model.PatientRequest) error
		Get(ctx context.Context, id int64) (*model.PatientRequest, error)
		// SaveClassification persists the classifier output and the
		// ANALYZED status in one write.
		SaveClassification(ctx context.Context, id int64, result model.ClassificationResult) error
		UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error
		// AssignDoctor records the assignment and the DOCTOR_ASSIGNED
		// status atomically.
		AssignDoctor(ctx context.Context, id, doctorID int64) error
		ListByPatient(ctx context.Context, patientID int64) ([]*model.RequestDetail, error)
		ListAll(ctx context.Context) ([]*model.RequestDetail, error)
		Count(ctx context.Context) (int64, error)
		CountByStatuses(ctx context.Context, statuses ...model.RequestStatus) (int64, error)
		CountEmergencies(ctx context.Context) (int64, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appt *model.Appointment) error
		GetByRequest(ctx context.Context, requestID int64) (*model.Appointment, error)
		ListAll(ctx context.Context) ([]*model.AppointmentDetail, error)
		CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error)
	}

	AdminRepository interface {
		GetByEmail(ctx context.Context, email string) (*model.Admin, error)
		First(ctx context.Context) (*model.Admin, error)
	}

	EmailLogRepository interface {
		Create(ctx context.Context, log *model.EmailLog) error
		ListRecent(ctx context.Context, limit int) ([]*model.EmailLog, error)
	}
)
