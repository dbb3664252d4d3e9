package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	pgrepo "github.com/pan-day/bot-tele2/internal/repo/postgres"
	"github.com/pan-day/bot-tele2/internal/services/ledger"
)

var (
	ErrAlreadyDecided  = errors.New("photo already decided")
	ErrAlreadyApproved = errors.New("user already approved")
	ErrUserNotFound    = errors.New("user not found")
	ErrPhotoNotFound   = errors.New("photo not found")
)

type UsersRepo interface {
	GetByID(context.Context, int64) (model.User, error)
	SetApproved(context.Context, int64) (model.User, error)
}

type LedgerRepo interface {
	DecidePhoto(context.Context, model.PhotoDecision) (model.PhotoDecisionResult, error)
}

type AuditLogger interface {
	LogUserDecision(context.Context, model.Actor, int64, bool) error
	LogPhotoDecision(context.Context, model.Actor, model.Photo, int64) error
}

// Outcome is what a moderation decision changed. Photo is set only for
// photo actions.
type Outcome struct {
	Action model.ModerationAction
	User   model.User
	Photo  *model.PhotoDecisionResult
}

type Service struct {
	users  UsersRepo
	ledger LedgerRepo
	audit  AuditLogger
	logger *zap.Logger
	now    func() time.Time
}

func NewService(users UsersRepo, ledgerRepo LedgerRepo, audit AuditLogger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		ledger: ledgerRepo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// Decide dispatches a parsed button payload.
func (s *Service) Decide(ctx context.Context, admin model.Actor, action model.ModerationAction) (Outcome, error) {
	outcome := Outcome{Action: action}

	switch action.Kind {
	case enums.ActionApproveUser:
		user, err := s.ApproveUser(ctx, admin, action.TargetID)
		outcome.User = user
		return outcome, err
	case enums.ActionRejectUser:
		user, err := s.RejectUser(ctx, admin, action.TargetID)
		outcome.User = user
		return outcome, err
	case enums.ActionApprovePhoto:
		result, err := s.ApprovePhoto(ctx, admin, action.TargetID)
		if err != nil {
			return outcome, err
		}
		outcome.User = result.Submitter
		outcome.Photo = &result
		return outcome, nil
	case enums.ActionRejectPhoto:
		result, err := s.RejectPhoto(ctx, admin, action.TargetID)
		if err != nil {
			return outcome, err
		}
		outcome.User = result.Submitter
		outcome.Photo = &result
		return outcome, nil
	default:
		return outcome, fmt.Errorf("%w: %q", model.ErrUnknownAction, action.Kind)
	}
}

func (s *Service) ApproveUser(ctx context.Context, admin model.Actor, userID int64) (model.User, error) {
	user, err := s.users.SetApproved(ctx, userID)
	switch {
	case errors.Is(err, pgrepo.ErrUserAlreadyApproved):
		return model.User{}, ErrAlreadyApproved
	case errors.Is(err, pgrepo.ErrUserNotFound):
		return model.User{}, ErrUserNotFound
	case err != nil:
		return model.User{}, err
	}

	s.logAudit(s.audit.LogUserDecision(ctx, admin, userID, true), "user_approved", userID)
	return user, nil
}

// RejectUser leaves the stored row untouched; the user stays unapproved.
func (s *Service) RejectUser(ctx context.Context, admin model.Actor, userID int64) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if user.IsApproved {
		return model.User{}, ErrAlreadyApproved
	}

	s.logAudit(s.audit.LogUserDecision(ctx, admin, userID, false), "user_rejected", userID)
	return user, nil
}

// ApprovePhoto marks the photo approved and credits its owner.
func (s *Service) ApprovePhoto(ctx context.Context, admin model.Actor, photoID int64) (model.PhotoDecisionResult, error) {
	return s.decidePhoto(ctx, admin, photoID, enums.PhotoStatusApproved, ledger.PhotoReward)
}

func (s *Service) RejectPhoto(ctx context.Context, admin model.Actor, photoID int64) (model.PhotoDecisionResult, error) {
	return s.decidePhoto(ctx, admin, photoID, enums.PhotoStatusRejected, 0)
}

func (s *Service) decidePhoto(ctx context.Context, admin model.Actor, photoID int64, status enums.PhotoStatus, reward int64) (model.PhotoDecisionResult, error) {
	decision := model.PhotoDecision{
		PhotoID:   photoID,
		Status:    status,
		Moderator: admin,
		Reward:    reward,
		DecidedAt: s.now().UTC(),
	}
	if reward != 0 {
		decision.Reason = ledger.PhotoApprovedReason
	}

	result, err := s.ledger.DecidePhoto(ctx, decision)
	switch {
	case errors.Is(err, pgrepo.ErrPhotoAlreadyDecided):
		return model.PhotoDecisionResult{}, ErrAlreadyDecided
	case errors.Is(err, pgrepo.ErrPhotoNotFound):
		return model.PhotoDecisionResult{}, ErrPhotoNotFound
	case err != nil:
		return model.PhotoDecisionResult{}, err
	}

	s.logAudit(s.audit.LogPhotoDecision(ctx, admin, result.Photo, reward), string(status), photoID)
	return result, nil
}

func (s *Service) logAudit(err error, action string, targetID int64) {
	if err != nil {
		s.logger.Warn("save moderation audit", zap.String("action", action), zap.Int64("target_id", targetID), zap.Error(err))
	}
}
