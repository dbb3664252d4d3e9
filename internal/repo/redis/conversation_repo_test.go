package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

func TestConversationRepoLifecycle(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewConversationRepo(client)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, 42); err != nil || ok {
		t.Fatalf("expected empty conversation, ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, 42, enums.RegistrationAwaitingName, time.Hour); err != nil {
		t.Fatalf("set conversation: %v", err)
	}
	if got, err := mr.Get("conv:registration:42"); err != nil || got != "AWAITING_NAME" {
		t.Fatalf("unexpected stored value %q err=%v", got, err)
	}

	state, ok, err := repo.Get(ctx, 42)
	if err != nil || !ok || state != enums.RegistrationAwaitingName {
		t.Fatalf("unexpected state %q ok=%v err=%v", state, ok, err)
	}

	removed, err := repo.Delete(ctx, 42)
	if err != nil || !removed {
		t.Fatalf("expected removal, removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(ctx, 42)
	if err != nil || removed {
		t.Fatalf("expected nothing to remove, removed=%v err=%v", removed, err)
	}
}

func TestConversationRepoExpires(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewConversationRepo(client)
	ctx := context.Background()

	if err := repo.Set(ctx, 7, enums.RegistrationAwaitingName, time.Minute); err != nil {
		t.Fatalf("set conversation: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := repo.Get(ctx, 7); err != nil || ok {
		t.Fatalf("expected expired conversation, ok=%v err=%v", ok, err)
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
