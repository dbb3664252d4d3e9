package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

type Repo interface {
	Save(context.Context, model.Audit) error
	ListRecent(context.Context, int) ([]model.Audit, error)
}

type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) LogUserDecision(ctx context.Context, admin model.Actor, userID int64, approved bool) error {
	action := enums.AuditActionUserRejected
	if approved {
		action = enums.AuditActionUserApproved
	}
	return s.save(ctx, admin.ID, action, map[string]interface{}{
		"target_tg_id":   userID,
		"admin_username": admin.Username,
	})
}

func (s *Service) LogPhotoDecision(ctx context.Context, admin model.Actor, photo model.Photo, reward int64) error {
	action := enums.AuditActionPhotoRejected
	if photo.Status == enums.PhotoStatusApproved {
		action = enums.AuditActionPhotoApproved
	}
	return s.save(ctx, admin.ID, action, map[string]interface{}{
		"photo_id":       photo.ID,
		"target_tg_id":   photo.UserID,
		"reward":         reward,
		"admin_username": admin.Username,
	})
}

func (s *Service) LogPointsAdjusted(ctx context.Context, admin model.Actor, tx model.Transaction, balance int64) error {
	return s.save(ctx, admin.ID, enums.AuditActionPointsAdjusted, map[string]interface{}{
		"target_tg_id":   tx.UserID,
		"amount":         tx.Amount,
		"reason":         tx.Reason,
		"balance":        balance,
		"transaction_id": tx.ID,
	})
}

func (s *Service) Recent(ctx context.Context, limit int) ([]model.Audit, error) {
	if s.repo == nil {
		return []model.Audit{}, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) save(ctx context.Context, actorTGID int64, action enums.AuditAction, fields map[string]interface{}) error {
	if s.repo == nil {
		return nil
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		payload = json.RawMessage(`{}`)
	}

	return s.repo.Save(ctx, model.Audit{
		ActorTGID: actorTGID,
		Action:    action,
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	})
}
