package model

import "time"

type Transaction struct {
	ID            int64     `db:"transaction_id"`
	UserID        int64     `db:"user_id"`
	Amount        int64     `db:"amount"`
	AdminID       *int64    `db:"admin_id"`
	AdminUsername string    `db:"admin_username"`
	Date          time.Time `db:"date"`
	Reason        string    `db:"reason"`
}

type PointsEntry struct {
	UserID int64
	Amount int64
	Admin  *Actor
	Reason string
	At     time.Time
}

type PointsResult struct {
	User        User
	Transaction Transaction
}
