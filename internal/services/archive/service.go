package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
)

var ErrNotApproved = errors.New("only approved photos are archived")

type Downloader interface {
	DownloadFile(context.Context, string) (io.ReadCloser, int64, error)
}

type Storage interface {
	Put(context.Context, string, io.Reader, int64, string) error
}

// Service copies approved photos from Telegram into object storage.
type Service struct {
	downloader Downloader
	storage    Storage
	newID      func() string
}

func NewService(downloader Downloader, storage Storage) *Service {
	return &Service{
		downloader: downloader,
		storage:    storage,
		newID:      func() string { return uuid.NewString() },
	}
}

// Enabled is false when no bucket is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.downloader != nil && s.storage != nil
}

func (s *Service) Store(ctx context.Context, photo model.Photo) (string, error) {
	if !s.Enabled() {
		return "", nil
	}
	if photo.Status != enums.PhotoStatusApproved {
		return "", ErrNotApproved
	}

	body, size, err := s.downloader.DownloadFile(ctx, photo.FileID)
	if err != nil {
		return "", fmt.Errorf("download photo %d: %w", photo.ID, err)
	}
	defer body.Close()

	key := ObjectKey(photo, s.newID())
	if err := s.storage.Put(ctx, key, body, size, "image/jpeg"); err != nil {
		return "", fmt.Errorf("archive photo %d: %w", photo.ID, err)
	}
	return key, nil
}

func ObjectKey(photo model.Photo, id string) string {
	return fmt.Sprintf("photos/%d/%d-%s.jpg", photo.UserID, photo.ID, id)
}
