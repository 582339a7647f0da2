package funfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ethanbaker/states/pkg/states"
	"github.com/redis/go-redis/v9"
)

// A conflicting transaction is retried after a jittered, doubling pause.
// With MAX_REDIS_TX_RETRIES attempts the total wait stays under a second.
const (
	MAX_REDIS_TX_RETRIES = 8
	REDIS_TX_BACKOFF     = 2 * time.Millisecond
)

// RedisStore keeps one JSON overlay document per state.
// Mutations are optimistic WATCH/MULTI transactions retried on conflict.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed fun fact store
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "funfacts:",
	}
}

// key generates the Redis key for a state code
func (s *RedisStore) key(code string) string {
	return s.prefix + code
}

// GetFacts returns the facts stored for a state, or false if no document exists
func (s *RedisStore) GetFacts(ctx context.Context, code string) ([]string, bool, error) {
	data, err := s.client.Get(ctx, s.key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get fun facts: %w", err)
	}

	var overlay states.FunFactOverlay
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, false, fmt.Errorf("unmarshal fun facts: %w", err)
	}
	if overlay.Facts == nil {
		overlay.Facts = []string{}
	}
	return overlay.Facts, true, nil
}

// GetOrCreate returns the document for a state, creating an empty one if needed
func (s *RedisStore) GetOrCreate(ctx context.Context, code string) (*states.FunFactOverlay, error) {
	return s.update(ctx, code, true, nil)
}

// AppendFacts appends facts to a state's document, creating it first if needed
func (s *RedisStore) AppendFacts(ctx context.Context, code string, facts []string) (*states.FunFactOverlay, error) {
	if len(facts) == 0 {
		return nil, states.ErrEmptyFacts
	}

	return s.update(ctx, code, true, func(current []string) ([]string, error) {
		return states.AppendFacts(current, facts)
	})
}

// ReplaceFactAt sets the fact at a zero-based index
func (s *RedisStore) ReplaceFactAt(ctx context.Context, code string, index int, value string) (*states.FunFactOverlay, error) {
	return s.update(ctx, code, false, func(current []string) ([]string, error) {
		return states.ReplaceAt(current, index, value)
	})
}

// RemoveFactAt removes the fact at a zero-based index and compacts the list
func (s *RedisStore) RemoveFactAt(ctx context.Context, code string, index int) (*states.FunFactOverlay, error) {
	return s.update(ctx, code, false, func(current []string) ([]string, error) {
		return states.RemoveAt(current, index)
	})
}

// Ping checks the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// update reads, modifies and writes one document inside a WATCH transaction.
// When create is false a missing document fails with states.ErrNoFacts.
// A nil fn leaves an existing document untouched.
func (s *RedisStore) update(ctx context.Context, code string, create bool, fn func([]string) ([]string, error)) (*states.FunFactOverlay, error) {
	key := s.key(code)

	for attempt := range MAX_REDIS_TX_RETRIES {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay(attempt - 1)):
			}
		}

		var result *states.FunFactOverlay

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			now := time.Now().UTC()

			var overlay states.FunFactOverlay
			data, err := tx.Get(ctx, key).Bytes()
			switch {
			case errors.Is(err, redis.Nil):
				if !create {
					return states.ErrNoFacts
				}
				overlay = states.FunFactOverlay{StateCode: code, Facts: []string{}, CreatedAt: now, UpdatedAt: now}
			case err != nil:
				return fmt.Errorf("get fun facts: %w", err)
			default:
				if err := json.Unmarshal(data, &overlay); err != nil {
					return fmt.Errorf("unmarshal fun facts: %w", err)
				}
				if overlay.Facts == nil {
					overlay.Facts = []string{}
				}
				if fn == nil {
					result = &overlay
					return nil
				}
			}

			if fn != nil {
				updated, err := fn(overlay.Facts)
				if err != nil {
					return err
				}
				overlay.Facts = updated
				overlay.UpdatedAt = now
			}

			encoded, err := json.Marshal(overlay)
			if err != nil {
				return fmt.Errorf("marshal fun facts: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				return nil
			})
			if err != nil {
				return err
			}

			result = &overlay
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("update fun facts for %s: gave up after %d conflicting transactions", code, MAX_REDIS_TX_RETRIES)
}

// retryDelay returns the pause before retry n (zero-based): a random duration in [b/2, b) where b doubles per retry
func retryDelay(n int) time.Duration {
	base := REDIS_TX_BACKOFF << n
	return base/2 + rand.N(base/2)
}
