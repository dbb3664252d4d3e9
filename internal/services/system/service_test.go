package system

import (
	"context"
	"testing"

	"github.com/pan-day/bot-tele2/internal/domain/model"
)

type fakeRepo struct {
	counts model.UsersCount
}

func (r *fakeRepo) Counts(_ context.Context) (model.UsersCount, error) {
	return r.counts, nil
}

func TestSystemServiceStats(t *testing.T) {
	svc := NewService(&fakeRepo{counts: model.UsersCount{Total: 42, Approved: 25, PendingPhotos: 3}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 42 || stats.Approved != 25 || stats.PendingPhotos != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
