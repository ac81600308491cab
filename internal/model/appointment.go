package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment exists only after a doctor affirmatively confirms a
// request; at most one per confirmed request.
type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	RequestID   int64             `db:"request_id" json:"request_id"`
	PatientID   int64             `db:"patient_id" json:"patient_id"`
	DoctorID    int64             `db:"doctor_id" json:"doctor_id"`
	Date        time.Time         `db:"appointment_date" json:"appointment_date"`
	Time        string            `db:"appointment_time" json:"appointment_time"`
	Status      AppointmentStatus `db:"status" json:"status"`
	DoctorNotes *string           `db:"doctor_notes" json:"doctor_notes,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	ConfirmedAt *time.Time        `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

type ConfirmAppointmentRequest struct {
	RequestID int64  `json:"request_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// AppointmentDetail joins patient and doctor names for listings.
type AppointmentDetail struct {
	Appointment
	PatientName     string    `db:"patient_name" json:"patient_name"`
	PatientEmail    string    `db:"patient_email" json:"patient_email"`
	DoctorName      string    `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialty Specialty `db:"doctor_specialty" json:"doctor_specialty"`
}
