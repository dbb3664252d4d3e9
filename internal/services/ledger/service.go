package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/model"
	pgrepo "github.com/pan-day/bot-tele2/internal/repo/postgres"
)

const (
	PhotoReward         int64 = 1
	PhotoApprovedReason       = "Одобрение фото"
	DefaultDebitReason        = "Списание администратором"
	DefaultCreditReason       = "Начисление администратором"
)

var (
	ErrUsage           = errors.New("expected <user_id> <amount> [reason]")
	ErrInvalidArgs     = errors.New("user id and amount must be integers")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrUserNotFound    = errors.New("user not found")
	ErrBalanceMismatch = errors.New("balance does not match ledger")
)

type Repo interface {
	Apply(context.Context, model.PointsEntry) (model.PointsResult, error)
	ListRecent(context.Context, int64, int) ([]model.Transaction, error)
	SumForUser(context.Context, int64) (int64, error)
}

type UsersRepo interface {
	GetByID(context.Context, int64) (model.User, error)
}

type Profile struct {
	User    model.User
	History []model.Transaction
}

// AdjustRequest is a parsed "/remove_points" or "/add_points" argument list.
type AdjustRequest struct {
	UserID int64
	Amount int64
	Reason string
}

type Service struct {
	repo         Repo
	users        UsersRepo
	historyLimit int
	now          func() time.Time
}

func NewService(repo Repo, users UsersRepo, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &Service{
		repo:         repo,
		users:        users,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Credit adds a positive amount. A nil admin means a system entry.
func (s *Service) Credit(ctx context.Context, userID, amount int64, admin *model.Actor, reason string) (model.PointsResult, error) {
	if amount <= 0 {
		return model.PointsResult{}, ErrInvalidAmount
	}
	return s.apply(ctx, userID, amount, admin, reason)
}

// Debit subtracts a positive magnitude. The balance may go negative.
func (s *Service) Debit(ctx context.Context, userID, amount int64, admin *model.Actor, reason string) (model.PointsResult, error) {
	if amount <= 0 {
		return model.PointsResult{}, ErrInvalidAmount
	}
	return s.apply(ctx, userID, -amount, admin, reason)
}

func (s *Service) apply(ctx context.Context, userID, delta int64, admin *model.Actor, reason string) (model.PointsResult, error) {
	result, err := s.repo.Apply(ctx, model.PointsEntry{
		UserID: userID,
		Amount: delta,
		Admin:  admin,
		Reason: strings.TrimSpace(reason),
		At:     s.now().UTC(),
	})
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return model.PointsResult{}, ErrUserNotFound
	}
	if err != nil {
		return model.PointsResult{}, err
	}
	return result, nil
}

// Profile returns the user with the latest transactions, newest first.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return Profile{}, ErrUserNotFound
	}
	if err != nil {
		return Profile{}, err
	}

	history, err := s.repo.ListRecent(ctx, userID, s.historyLimit)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, History: history}, nil
}

// Reconcile checks that the stored balance equals the ledger sum.
func (s *Service) Reconcile(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	sum, err := s.repo.SumForUser(ctx, userID)
	if err != nil {
		return err
	}
	if sum != user.Points {
		return fmt.Errorf("%w: user %d balance %d, ledger %d", ErrBalanceMismatch, userID, user.Points, sum)
	}
	return nil
}

// ParseAdjustArgs validates "<user_id> <amount> [reason]". The reason may be
// wrapped in quotes; the default applies when it is omitted.
func ParseAdjustArgs(raw, defaultReason string) (AdjustRequest, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return AdjustRequest{}, ErrUsage
	}

	userID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return AdjustRequest{}, ErrInvalidArgs
	}
	amount, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return AdjustRequest{}, ErrInvalidArgs
	}
	if amount <= 0 {
		return AdjustRequest{}, ErrInvalidAmount
	}

	reason := unquote(strings.Join(fields[2:], " "))
	if reason == "" {
		reason = defaultReason
	}

	return AdjustRequest{UserID: userID, Amount: amount, Reason: reason}, nil
}

func unquote(value string) string {
	value = strings.TrimSpace(value)
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"«", "»"}, {"“", "”"}} {
		if len(value) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(value, pair[0]) && strings.HasSuffix(value, pair[1]) {
			return strings.TrimSpace(value[len(pair[0]) : len(value)-len(pair[1])])
		}
	}
	return value
}
