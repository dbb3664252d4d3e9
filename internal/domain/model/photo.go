package model

import (
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

type Photo struct {
	ID           int64             `db:"photo_id"`
	UserID       int64             `db:"user_id"`
	FileID       string            `db:"file_id"`
	SentDate     time.Time         `db:"sent_date"`
	Status       enums.PhotoStatus `db:"status"`
	ModeratorID  *int64            `db:"moderator_id"`
	DecisionDate *time.Time        `db:"decision_date"`
}

type PhotoDecision struct {
	PhotoID   int64
	Status    enums.PhotoStatus
	Moderator Actor
	// Reward is credited to the submitter in the same transaction when the
	// photo is approved. Zero means no ledger entry.
	Reward    int64
	Reason    string
	DecidedAt time.Time
}

type PhotoDecisionResult struct {
	Photo       Photo
	Submitter   User
	Transaction *Transaction
}
