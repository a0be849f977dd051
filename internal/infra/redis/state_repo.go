package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo keeps the per-user donation conversation state in Redis. The TTL
// doubles as the abandonment policy: a user who walks away mid-flow simply
// has their state expire.
type StateRepo struct {
	client *redClient
	ttl    time.Duration
}

func NewStateRepo(client *redClient, ttl time.Duration) *StateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &StateRepo{client: client, ttl: ttl}
}

func (s *StateRepo) stateKey(tgID int64) string {
	return fmt.Sprintf("donate_state:%d", tgID)
}

func (s *StateRepo) SetState(ctx context.Context, tgID int64, state *repository.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(tgID), data, s.ttl)
}

func (s *StateRepo) GetState(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	data, err := s.client.Get(ctx, s.stateKey(tgID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var state repository.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *StateRepo) ClearState(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.stateKey(tgID))
}
