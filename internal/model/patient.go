package model

import (
	"time"
)

type Patient struct {
	ID        int64      `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"full_name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     string     `db:"email" json:"email"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	LastLogin *time.Time `db:"last_login" json:"last_login,omitempty"`
}
