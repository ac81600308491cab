package model

import (
	"time"
)

type UserType string

const (
	UserTypePatient UserType = "patient"
	UserTypeDoctor  UserType = "doctor"
	UserTypeAdmin   UserType = "admin"
)

type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type SendOTPRequest struct {
	Email string   `json:"email" binding:"required,email"`
	Type  UserType `json:"type" binding:"required,oneof=patient doctor"`
}

type VerifyOTPRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	OTP       string   `json:"otp" binding:"required,len=6"`
	Type      UserType `json:"type" binding:"required,oneof=patient doctor"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Specialty string   `json:"specialty" binding:"omitempty,specialty"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthUser struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Type      UserType   `json:"type"`
	Specialty *Specialty `json:"specialty,omitempty"`
	Status    string     `json:"status,omitempty"`
}

type TokenResponse struct {
	Token   string    `json:"token,omitempty"`
	Pending bool      `json:"pending,omitempty"`
	Message string    `json:"message,omitempty"`
	User    *AuthUser `json:"user,omitempty"`
}
