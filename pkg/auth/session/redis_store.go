package session

import (
	"context"
	"errors"
	"time"

	redisclient "github.com/leaderturk/property-management/pkg/redis"
)

type redisBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sid string) string
}

// RedisStore keeps sessions in redis; expiry is enforced by key TTL.
type RedisStore struct {
	backend redisBackend
	keyer   sessionKeyer
	now     func() time.Time
}

func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{backend: client, keyer: client, now: time.Now}
}

func (s *RedisStore) Save(ctx context.Context, sid string, rec Record) error {
	ttl := rec.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	// the value is "<unix expiry>|<user id>" so Load can report ExpiresAt
	return s.backend.Set(ctx, s.keyer.SessionKey(sid), encodeRecord(rec), ttl)
}

func (s *RedisStore) Load(ctx context.Context, sid string) (Record, error) {
	raw, err := s.backend.Get(ctx, s.keyer.SessionKey(sid))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.backend.Del(ctx, s.keyer.SessionKey(sid))
}
