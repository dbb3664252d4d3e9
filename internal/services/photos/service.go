package photos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	pgrepo "github.com/pan-day/bot-tele2/internal/repo/postgres"
)

var (
	ErrNotApproved = errors.New("only approved users can submit photos")
	ErrEmptyFile   = errors.New("photo file id is empty")
)

type UsersRepo interface {
	GetByID(context.Context, int64) (model.User, error)
}

type Repo interface {
	Create(context.Context, model.Photo) (model.Photo, error)
}

type Submission struct {
	Photo     model.Photo
	Submitter model.User
}

type Service struct {
	users  UsersRepo
	photos Repo
	now    func() time.Time
}

func NewService(users UsersRepo, photos Repo) *Service {
	return &Service{users: users, photos: photos, now: time.Now}
}

// Submit records a pending photo for an approved user.
func (s *Service) Submit(ctx context.Context, userID int64, fileID string) (Submission, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return Submission{}, ErrEmptyFile
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return Submission{}, ErrNotApproved
	}
	if err != nil {
		return Submission{}, err
	}
	if !user.IsApproved {
		return Submission{}, ErrNotApproved
	}

	photo, err := s.photos.Create(ctx, model.Photo{
		UserID:   userID,
		FileID:   fileID,
		SentDate: s.now().UTC(),
		Status:   enums.PhotoStatusPending,
	})
	if err != nil {
		return Submission{}, err
	}

	return Submission{Photo: photo, Submitter: user}, nil
}
