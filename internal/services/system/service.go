package system

import (
	"context"

	"github.com/pan-day/bot-tele2/internal/domain/model"
)

type Repo interface {
	Counts(context.Context) (model.UsersCount, error)
}

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Stats(ctx context.Context) (model.UsersCount, error) {
	if s.repo == nil {
		return model.UsersCount{}, nil
	}
	return s.repo.Counts(ctx)
}
