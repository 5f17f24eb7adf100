package conversationinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/conversation"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "conversation:"
	indexKey  = "conversations"
)

// RedisStore keeps each conversation as a JSON document with an optional
// TTL. A set indexes the live IDs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ conversation.Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func encodeState(s *conversation.State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*conversation.State, error) {
	var s conversation.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*conversation.State, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, conversation.ErrNotFound().WithDetail("conversation_id", id)
		}
		return nil, conversation.ErrStore(err)
	}
	s, err := decodeState(data)
	if err != nil {
		return nil, conversation.ErrStore(err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *conversation.State) error {
	data, err := encodeState(s)
	if err != nil {
		return conversation.ErrStore(err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key(s.ID), data, r.ttl)
	pipe.SAdd(ctx, indexKey, s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return conversation.ErrStore(err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, key(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return conversation.ErrStore(err)
	}
	if del.Val() == 0 {
		return conversation.ErrNotFound().WithDetail("conversation_id", id)
	}
	return nil
}

func (r *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, conversation.ErrStore(err)
	}
	return n == 1, nil
}

// List loads every indexed conversation. IDs whose document expired are
// dropped from the index on the way.
func (r *RedisStore) List(ctx context.Context) ([]*conversation.State, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, conversation.ErrStore(err)
	}
	if len(ids) == 0 {
		return []*conversation.State{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, conversation.ErrStore(err)
	}

	out := make([]*conversation.State, 0, len(values))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		s, err := decodeState([]byte(raw))
		if err != nil {
			return nil, conversation.ErrStore(err)
		}
		out = append(out, s)
	}
	if len(stale) > 0 {
		r.client.SRem(ctx, indexKey, stale...)
	}

	sortRecent(out)
	return out, nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	states, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(states), nil
}
