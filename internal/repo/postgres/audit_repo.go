package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

type AuditRepo struct {
	db *sqlx.DB
}

func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Save(ctx context.Context, entry model.Audit) error {
	payload := entry.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bot_audit (actor_tg_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ActorTGID, string(entry.Action), string(payload), entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save bot audit: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.Audit, error) {
	if limit <= 0 {
		limit = 50
	}

	items := make([]model.Audit, 0, limit)
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, actor_tg_id, action, payload, created_at
		FROM bot_audit
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent bot audit: %w", err)
	}
	return items, nil
}
