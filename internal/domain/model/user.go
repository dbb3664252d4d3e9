package model

import "time"

type User struct {
	ID               int64     `db:"user_id"`
	Username         string    `db:"username"`
	FullName         string    `db:"full_name"`
	RegistrationDate time.Time `db:"registration_date"`
	IsApproved       bool      `db:"is_approved"`
	Points           int64     `db:"points"`
}

// Actor is the Telegram identity behind an action, usually an admin.
type Actor struct {
	ID       int64
	Username string
}
