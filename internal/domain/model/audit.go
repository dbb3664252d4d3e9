package model

import (
	"encoding/json"
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

type Audit struct {
	ID        int64             `db:"id"`
	ActorTGID int64             `db:"actor_tg_id"`
	Action    enums.AuditAction `db:"action"`
	Payload   json.RawMessage   `db:"payload"`
	CreatedAt time.Time         `db:"created_at"`
}
