package notifier

import (
	"context"

	"github.com/swasth/triage-api/internal/model"
)

// Kind tags a notification variant. Each kind has exactly one typed
// payload and one template.
type Kind string

const (
	KindOTP                 Kind = "otp"
	KindDoctorAssignment    Kind = "doctor_notification"
	KindPatientConfirmation Kind = "patient_confirmation"
	KindEmergencyAlert      Kind = "emergency"
)

// OTPMessage is the login code payload.
type OTPMessage struct {
	Code     string
	UserType model.UserType
}

// DoctorAssignment is the context a doctor needs to confirm or
// decline a triaged request out-of-band.
type DoctorAssignment struct {
	RequestID     int64
	PatientName   string
	PatientEmail  string
	PatientPhone  string
	Symptoms      string
	Duration      string
	Severity      int
	SeverityLevel model.SeverityLevel
	Medications   string
	RedFlags      bool
	ConfirmURL    string
	DeclineURL    string
}

// PatientConfirmation is the finalized schedule sent to the patient.
type PatientConfirmation struct {
	AppointmentID int64
	PatientName   string
	DoctorName    string
	Specialty     model.Specialty
	Hospital      string
	Location      string
	DoctorPhone   string
	Date          string
	Time          string
}

// EmergencyAlert is the full patient context escalated to the admin.
type EmergencyAlert struct {
	PatientName   string
	PatientEmail  string
	PatientPhone  string
	Symptoms      string
	Severity      int
	SeverityLevel model.SeverityLevel
}

// Notifier delivers triage notifications. Every method returns an
// error for the caller to record; none may panic or block the triage
// pipeline beyond the send itself.
type Notifier interface {
	SendOTP(ctx context.Context, email string, msg OTPMessage) error
	NotifyDoctor(ctx context.Context, doctorEmail string, assignment DoctorAssignment) error
	NotifyPatient(ctx context.Context, patientEmail string, confirmation PatientConfirmation) error
	NotifyAdminEmergency(ctx context.Context, adminEmail string, alert EmergencyAlert) error
}
