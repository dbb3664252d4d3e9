package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

const conversationPrefix = "conv:registration:"

// ConversationRepo keeps in-flight registration steps so that a restart
// does not lose users halfway through /start.
type ConversationRepo struct {
	client *goredis.Client
}

func NewConversationRepo(client *goredis.Client) *ConversationRepo {
	return &ConversationRepo{client: client}
}

func (r *ConversationRepo) Get(ctx context.Context, userID int64) (enums.RegistrationState, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, conversationKey(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get conversation %d: %w", userID, err)
	}
	return enums.RegistrationState(raw), true, nil
}

func (r *ConversationRepo) Set(ctx context.Context, userID int64, state enums.RegistrationState, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Set(ctx, conversationKey(userID), string(state), ttl).Err(); err != nil {
		return fmt.Errorf("set conversation %d: %w", userID, err)
	}
	return nil
}

// Delete reports whether a conversation was in flight.
func (r *ConversationRepo) Delete(ctx context.Context, userID int64) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	removed, err := r.client.Del(ctx, conversationKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete conversation %d: %w", userID, err)
	}
	return removed > 0, nil
}

func conversationKey(userID int64) string {
	return conversationPrefix + strconv.FormatInt(userID, 10)
}
