package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

type conversation struct {
	state     enums.RegistrationState
	expiresAt time.Time
}

// ConversationRepo is the process-local fallback used when Redis is not
// configured. State is lost on restart.
type ConversationRepo struct {
	mu    sync.Mutex
	items map[int64]conversation
	now   func() time.Time
}

func NewConversationRepo() *ConversationRepo {
	return &ConversationRepo{
		items: make(map[int64]conversation),
		now:   time.Now,
	}
}

func (r *ConversationRepo) Get(_ context.Context, userID int64) (enums.RegistrationState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return "", false, nil
	}
	if !item.expiresAt.IsZero() && !r.now().Before(item.expiresAt) {
		delete(r.items, userID)
		return "", false, nil
	}
	return item.state, true, nil
}

func (r *ConversationRepo) Set(_ context.Context, userID int64, state enums.RegistrationState, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := conversation{state: state}
	if ttl > 0 {
		item.expiresAt = r.now().Add(ttl)
	}
	r.items[userID] = item
	return nil
}

func (r *ConversationRepo) Delete(ctx context.Context, userID int64) (bool, error) {
	_, ok, _ := r.Get(ctx, userID)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return ok, nil
}
