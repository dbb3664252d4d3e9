package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

const userColumns = `user_id, COALESCE(username, '') AS username, full_name, registration_date, is_approved, points`

// UsersRepo stores registered users and their denormalized balance.
type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// GetByID returns ErrUserNotFound when the user never registered.
func (r *UsersRepo) GetByID(ctx context.Context, userID int64) (model.User, error) {
	return getUser(ctx, r.db, userID)
}

// SaveRegistration inserts the user or replaces an earlier registration.
// The balance survives re-registration; approval does not.
func (r *UsersRepo) SaveRegistration(ctx context.Context, user model.User) (model.User, error) {
	var saved model.User
	err := r.db.GetContext(ctx, &saved, `
		INSERT INTO users (user_id, username, full_name, registration_date, is_approved)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			registration_date = EXCLUDED.registration_date,
			is_approved = FALSE
		RETURNING `+userColumns,
		user.ID, nullableString(user.Username), user.FullName, user.RegistrationDate.UTC(),
	)
	if err != nil {
		return model.User{}, fmt.Errorf("save registration: %w", err)
	}
	return saved, nil
}

// SetApproved flips the approval flag once. A second call reports
// ErrUserAlreadyApproved.
func (r *UsersRepo) SetApproved(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET is_approved = TRUE
		WHERE user_id = $1 AND NOT is_approved
		RETURNING `+userColumns, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("approve user: %w", err)
	}

	if _, err := getUser(ctx, r.db, userID); err != nil {
		return model.User{}, err
	}
	return model.User{}, ErrUserAlreadyApproved
}

func (r *UsersRepo) Counts(ctx context.Context) (model.UsersCount, error) {
	var counts model.UsersCount
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total,
			(SELECT COUNT(*) FROM users WHERE is_approved) AS approved,
			(SELECT COUNT(*) FROM photos WHERE status = 'pending') AS pending_photos
	`)
	if err != nil {
		return model.UsersCount{}, fmt.Errorf("count users: %w", err)
	}
	return counts, nil
}

func getUser(ctx context.Context, q queryer, userID int64) (model.User, error) {
	var user model.User
	err := q.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}
