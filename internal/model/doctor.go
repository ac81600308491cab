package model

import (
	"time"
)

type DoctorStatus string

const (
	DoctorStatusPending DoctorStatus = "pending"
	DoctorStatusActive  DoctorStatus = "active"
	DoctorStatusBlocked DoctorStatus = "blocked"
)

type DoctorAvailability string

const (
	DoctorAvailable   DoctorAvailability = "available"
	DoctorUnavailable DoctorAvailability = "unavailable"
)

type Doctor struct {
	ID           int64              `db:"id" json:"id"`
	Name         string             `db:"name" json:"name"`
	Phone        string             `db:"phone" json:"phone"`
	Email        string             `db:"email" json:"email"`
	Specialty    Specialty          `db:"specialty" json:"specialty"`
	Location     string             `db:"location" json:"location"`
	Hospital     string             `db:"hospital" json:"hospital"`
	Status       DoctorStatus       `db:"status" json:"status"`
	Availability DoctorAvailability `db:"availability" json:"availability"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	ApprovedAt   *time.Time         `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy   *int64             `db:"approved_by" json:"approved_by,omitempty"`
}

// Eligible reports whether the doctor can be auto-assigned a request.
func (d *Doctor) Eligible() bool {
	return d.Status == DoctorStatusActive && d.Availability == DoctorAvailable
}

type UpdateAvailabilityRequest struct {
	Availability DoctorAvailability `json:"availability" binding:"required,oneof=available unavailable"`
}
