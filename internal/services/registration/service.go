package registration

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	pgrepo "github.com/pan-day/bot-tele2/internal/repo/postgres"
)

const MaxNameLength = 200

var (
	ErrInvalidName     = errors.New("invalid full name")
	ErrNotAwaitingName = errors.New("registration is not awaiting a name")
)

type UsersRepo interface {
	GetByID(context.Context, int64) (model.User, error)
	SaveRegistration(context.Context, model.User) (model.User, error)
}

type ConversationRepo interface {
	Get(context.Context, int64) (enums.RegistrationState, bool, error)
	Set(context.Context, int64, enums.RegistrationState, time.Duration) error
	Delete(context.Context, int64) (bool, error)
}

// Applicant is the Telegram identity going through sign-up.
type Applicant struct {
	ID       int64
	Username string
}

type Status struct {
	State enums.RegistrationState
	// User is the zero value while the applicant has no stored row.
	User model.User
}

type Service struct {
	users         UsersRepo
	conversations ConversationRepo
	ttl           time.Duration
	now           func() time.Time
}

func NewService(users UsersRepo, conversations ConversationRepo, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:         users,
		conversations: conversations,
		ttl:           ttl,
		now:           time.Now,
	}
}

// State derives the registration state from the conversation store and
// the stored approval flag.
func (s *Service) State(ctx context.Context, userID int64) (Status, error) {
	state, ok, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, pgrepo.ErrUserNotFound) {
		return Status{}, err
	}
	registered := err == nil

	switch {
	case ok && state == enums.RegistrationAwaitingName:
		return Status{State: enums.RegistrationAwaitingName, User: user}, nil
	case !registered:
		return Status{State: enums.RegistrationUnregistered}, nil
	case user.IsApproved:
		return Status{State: enums.RegistrationApproved, User: user}, nil
	default:
		return Status{State: enums.RegistrationPendingApproval, User: user}, nil
	}
}

// Start enters AWAITING_NAME for unknown users. Registered users keep their
// state and nothing is written.
func (s *Service) Start(ctx context.Context, applicant Applicant) (Status, error) {
	status, err := s.State(ctx, applicant.ID)
	if err != nil {
		return Status{}, err
	}

	switch status.State {
	case enums.RegistrationUnregistered, enums.RegistrationAwaitingName:
		if err := s.conversations.Set(ctx, applicant.ID, enums.RegistrationAwaitingName, s.ttl); err != nil {
			return Status{}, err
		}
		status.State = enums.RegistrationAwaitingName
	}
	return status, nil
}

// SubmitName stores the registration (insert or replace) and leaves the
// user pending approval.
func (s *Service) SubmitName(ctx context.Context, applicant Applicant, fullName string) (model.User, error) {
	state, ok, err := s.conversations.Get(ctx, applicant.ID)
	if err != nil {
		return model.User{}, err
	}
	if !ok || state != enums.RegistrationAwaitingName {
		return model.User{}, ErrNotAwaitingName
	}

	fullName, err = NormalizeName(fullName)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.SaveRegistration(ctx, model.User{
		ID:               applicant.ID,
		Username:         strings.TrimSpace(applicant.Username),
		FullName:         fullName,
		RegistrationDate: s.now().UTC(),
	})
	if err != nil {
		return model.User{}, err
	}

	if _, err := s.conversations.Delete(ctx, applicant.ID); err != nil {
		return user, err
	}
	return user, nil
}

// Cancel drops an unfinished registration. It reports whether one existed.
func (s *Service) Cancel(ctx context.Context, userID int64) (bool, error) {
	return s.conversations.Delete(ctx, userID)
}

func NormalizeName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
