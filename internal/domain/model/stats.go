package model

type UsersCount struct {
	Total         int64 `db:"total"`
	Approved      int64 `db:"approved"`
	PendingPhotos int64 `db:"pending_photos"`
}
