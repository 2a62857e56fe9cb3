package authinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps refresh-token sessions in Redis so sessions
// survive restarts and are shared between instances.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session auth.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errx.Wrap(err, "failed to marshal session", errx.TypeInternal)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return iam.ErrSessionNotFound().WithDetail("reason", "session already expired")
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.RefreshToken, data, ttl).Err(); err != nil {
		return errx.Wrap(err, "failed to store session", errx.TypeExternal)
	}
	return nil
}

func (s *RedisSessionStore) Find(ctx context.Context, refreshToken string) (*auth.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+refreshToken).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, iam.ErrSessionNotFound()
		}
		return nil, errx.Wrap(err, "failed to load session", errx.TypeExternal)
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errx.Wrap(err, "failed to unmarshal session", errx.TypeInternal)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, refreshToken string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+refreshToken).Err(); err != nil {
		return errx.Wrap(err, "failed to delete session", errx.TypeExternal)
	}
	return nil
}
