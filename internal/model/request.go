package model

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPendingAnalysis RequestStatus = "PENDING_ANALYSIS"
	RequestStatusAnalyzed        RequestStatus = "ANALYZED"
	RequestStatusDoctorAssigned  RequestStatus = "DOCTOR_ASSIGNED"
	RequestStatusConfirmed       RequestStatus = "CONFIRMED"
	RequestStatusEmergency       RequestStatus = "EMERGENCY"
	RequestStatusCancelled       RequestStatus = "CANCELLED"
)

// requestTransitions is the complete set of legal status changes.
// CONFIRMED, EMERGENCY and CANCELLED are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPendingAnalysis: {RequestStatusAnalyzed},
	RequestStatusAnalyzed:        {RequestStatusDoctorAssigned, RequestStatusEmergency},
	RequestStatusDoctorAssigned:  {RequestStatusConfirmed, RequestStatusCancelled},
}

// CanTransition reports whether moving from s to next is legal.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further automated change is permitted.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestStatusConfirmed, RequestStatusEmergency, RequestStatusCancelled:
		return true
	}
	return false
}

// PatientRequest is the persisted lifecycle of a single triage case.
// It is created by a patient submission and mutated only by the triage
// service; it is never deleted, only moved to a terminal status.
type PatientRequest struct {
	ID                 int64          `db:"id" json:"id"`
	PatientID          int64          `db:"patient_id" json:"patient_id"`
	Symptoms           string         `db:"symptoms" json:"symptoms"`
	Duration           string         `db:"duration" json:"duration"`
	Severity           int            `db:"severity" json:"severity"`
	RedFlags           bool           `db:"red_flags" json:"red_flags"`
	Medications        string         `db:"medications" json:"medications,omitempty"`
	Consent            bool           `db:"consent" json:"consent"`
	Analysis           *string        `db:"analysis" json:"analysis,omitempty"`
	SuggestedSpecialty *Specialty     `db:"suggested_specialty" json:"suggested_specialty,omitempty"`
	SeverityLevel      *SeverityLevel `db:"severity_level" json:"severity_level,omitempty"`
	Status             RequestStatus  `db:"status" json:"status"`
	AssignedDoctorID   *int64         `db:"assigned_doctor_id" json:"assigned_doctor_id,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	AnalyzedAt         *time.Time     `db:"analyzed_at" json:"analyzed_at,omitempty"`
}

// Report extracts the immutable symptom report from the request.
func (r *PatientRequest) Report() SymptomReport {
	return SymptomReport{
		Symptoms:    r.Symptoms,
		Duration:    r.Duration,
		Severity:    r.Severity,
		RedFlags:    r.RedFlags,
		Medications: r.Medications,
	}
}

type SubmitRequestRequest struct {
	PatientID   int64  `json:"patient_id" binding:"required"`
	Symptoms    string `json:"symptoms" binding:"required"`
	Duration    string `json:"duration" binding:"required"`
	Severity    int    `json:"severity" binding:"required,min=1,max=10"`
	RedFlags    *bool  `json:"red_flags" binding:"required"`
	Medications string `json:"medications"`
	Consent     *bool  `json:"consent" binding:"required"`
}

// RequestDetail is a request joined with its doctor and appointment,
// as returned by the patient and admin listings.
type RequestDetail struct {
	PatientRequest
	PatientName     *string            `db:"patient_name" json:"patient_name,omitempty"`
	PatientEmail    *string            `db:"patient_email" json:"patient_email,omitempty"`
	PatientPhone    *string            `db:"patient_phone" json:"patient_phone,omitempty"`
	DoctorName      *string            `db:"doctor_name" json:"doctor_name,omitempty"`
	DoctorSpecialty *Specialty         `db:"doctor_specialty" json:"doctor_specialty,omitempty"`
	AppointmentDate *time.Time         `db:"appointment_date" json:"appointment_date,omitempty"`
	AppointmentTime *string            `db:"appointment_time" json:"appointment_time,omitempty"`
	ApptStatus      *AppointmentStatus `db:"appointment_status" json:"appointment_status,omitempty"`
}
