package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

const transactionColumns = `transaction_id, user_id, amount, admin_id, COALESCE(admin_username, '') AS admin_username, date, COALESCE(reason, '') AS reason`

// LedgerRepo keeps users.points and the transactions log in step. Every
// write goes through a single database transaction.
type LedgerRepo struct {
	db *sqlx.DB
}

func NewLedgerRepo(db *sqlx.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Apply adds entry.Amount to the balance and appends the ledger row.
func (r *LedgerRepo) Apply(ctx context.Context, entry model.PointsEntry) (model.PointsResult, error) {
	var result model.PointsResult
	err := WithTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		result, err = applyPoints(ctx, tx, entry)
		return err
	})
	if err != nil {
		return model.PointsResult{}, err
	}
	return result, nil
}

// DecidePhoto moves a pending photo to its final status. Approval with a
// non-zero reward credits the submitter in the same transaction.
func (r *LedgerRepo) DecidePhoto(ctx context.Context, decision model.PhotoDecision) (model.PhotoDecisionResult, error) {
	if !decision.Status.IsFinal() {
		return model.PhotoDecisionResult{}, fmt.Errorf("decide photo %d: status %q is not final", decision.PhotoID, decision.Status)
	}
	decidedAt := decision.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now()
	}

	var result model.PhotoDecisionResult
	err := WithTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var photo model.Photo
		err := tx.GetContext(ctx, &photo, `SELECT `+photoColumns+` FROM photos WHERE photo_id = $1 FOR UPDATE`, decision.PhotoID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPhotoNotFound
		}
		if err != nil {
			return fmt.Errorf("lock photo %d: %w", decision.PhotoID, err)
		}
		if photo.Status != enums.PhotoStatusPending {
			return ErrPhotoAlreadyDecided
		}

		err = tx.GetContext(ctx, &result.Photo, `
			UPDATE photos SET status = $2, moderator_id = $3, decision_date = $4
			WHERE photo_id = $1
			RETURNING `+photoColumns,
			decision.PhotoID, string(decision.Status), decision.Moderator.ID, decidedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("update photo %d: %w", decision.PhotoID, err)
		}

		if decision.Status != enums.PhotoStatusApproved || decision.Reward == 0 {
			result.Submitter, err = getUser(ctx, tx, photo.UserID)
			return err
		}

		moderator := decision.Moderator
		points, err := applyPoints(ctx, tx, model.PointsEntry{
			UserID: photo.UserID,
			Amount: decision.Reward,
			Admin:  &moderator,
			Reason: decision.Reason,
			At:     decidedAt,
		})
		if err != nil {
			return err
		}
		result.Submitter = points.User
		result.Transaction = &points.Transaction
		return nil
	})
	if err != nil {
		return model.PhotoDecisionResult{}, err
	}
	return result, nil
}

// ListRecent returns the latest transactions of a user, newest first.
// admin_username falls back to the admin's own registration handle.
func (r *LedgerRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	items := make([]model.Transaction, 0, limit)
	err := r.db.SelectContext(ctx, &items, `
		SELECT t.transaction_id, t.user_id, t.amount, t.admin_id,
			COALESCE(NULLIF(t.admin_username, ''), a.username, '') AS admin_username,
			t.date, COALESCE(t.reason, '') AS reason
		FROM transactions t
		LEFT JOIN users a ON a.user_id = t.admin_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.transaction_id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions of %d: %w", userID, err)
	}
	return items, nil
}

// SumForUser totals the ledger of a user; it equals users.points.
func (r *LedgerRepo) SumForUser(ctx context.Context, userID int64) (int64, error) {
	var sum int64
	err := r.db.GetContext(ctx, &sum, `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("sum transactions of %d: %w", userID, err)
	}
	return sum, nil
}

func applyPoints(ctx context.Context, q queryer, entry model.PointsEntry) (model.PointsResult, error) {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	var result model.PointsResult
	err := q.GetContext(ctx, &result.User, `
		UPDATE users SET points = points + $1
		WHERE user_id = $2
		RETURNING `+userColumns, entry.Amount, entry.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PointsResult{}, ErrUserNotFound
	}
	if err != nil {
		return model.PointsResult{}, fmt.Errorf("update balance of %d: %w", entry.UserID, err)
	}

	var adminID, adminUsername interface{}
	if entry.Admin != nil {
		adminID = entry.Admin.ID
		adminUsername = nullableString(entry.Admin.Username)
	}

	err = q.GetContext(ctx, &result.Transaction, `
		INSERT INTO transactions (user_id, amount, admin_id, admin_username, date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+transactionColumns,
		entry.UserID, entry.Amount, adminID, adminUsername, at.UTC(), nullableString(entry.Reason),
	)
	if err != nil {
		return model.PointsResult{}, fmt.Errorf("insert transaction for %d: %w", entry.UserID, err)
	}
	return result, nil
}
