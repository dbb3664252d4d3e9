package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

const photoColumns = `photo_id, user_id, file_id, sent_date, status, moderator_id, decision_date`

type PhotosRepo struct {
	db *sqlx.DB
}

func NewPhotosRepo(db *sqlx.DB) *PhotosRepo {
	return &PhotosRepo{db: db}
}

// Create stores a pending submission and returns it with its id.
func (r *PhotosRepo) Create(ctx context.Context, photo model.Photo) (model.Photo, error) {
	if photo.Status == "" {
		photo.Status = enums.PhotoStatusPending
	}

	var saved model.Photo
	err := r.db.GetContext(ctx, &saved, `
		INSERT INTO photos (user_id, file_id, sent_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+photoColumns,
		photo.UserID, photo.FileID, photo.SentDate.UTC(), string(photo.Status),
	)
	if err != nil {
		return model.Photo{}, fmt.Errorf("create photo: %w", err)
	}
	return saved, nil
}

func (r *PhotosRepo) GetByID(ctx context.Context, photoID int64) (model.Photo, error) {
	var photo model.Photo
	err := r.db.GetContext(ctx, &photo, `SELECT `+photoColumns+` FROM photos WHERE photo_id = $1`, photoID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Photo{}, ErrPhotoNotFound
	}
	if err != nil {
		return model.Photo{}, fmt.Errorf("get photo %d: %w", photoID, err)
	}
	return photo, nil
}
