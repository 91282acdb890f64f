package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

var errNotInitialized = errors.New("redis client not initialized")

// Keyspace namespaces every key the service writes.
type Keyspace string

const DefaultKeyspace Keyspace = "pm"

func (k Keyspace) key(kind string, parts ...string) string {
	out := []string{string(k), kind}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ":")
}

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	ExpireNX(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client backs the redis session store and the shared login rate limiter.
type Client struct {
	store cmdable
	raw   *redis.Client
	keys  Keyspace
}

// New connects using cfg and pings before returning.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{"addr": opts.Addr, "db": opts.DB}), "redis connection established")
	}
	return &Client{store: raw, raw: raw, keys: DefaultKeyspace}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis url or address is required")
	}

	opts := &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
		if opts.DB == 0 {
			opts.DB = cfg.DB
		}
	}

	opts.PoolSize = firstSet(opts.PoolSize, cfg.PoolSize)
	opts.MinIdleConns = firstSet(opts.MinIdleConns, cfg.MinIdleConns)
	opts.DialTimeout = firstSet(opts.DialTimeout, cfg.DialTimeout)
	opts.ReadTimeout = firstSet(opts.ReadTimeout, cfg.ReadTimeout)
	opts.WriteTimeout = firstSet(opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

// firstSet keeps a value parsed from the URL and falls back to the config field.
func firstSet[T int | time.Duration](fromURL, fromConfig T) T {
	if fromURL != 0 {
		return fromURL
	}
	return fromConfig
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns the string stored at key, or Nil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errNotInitialized
	}
	return c.store.Get(ctx, key).Result()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Del(ctx, keys...).Err()
}

// FixedWindowAllow counts a hit against scope and reports whether the count
// is still within limit. The window starts at the first hit; the TTL is
// (re)applied only when the counter has none, so a failed expire on one hit
// is repaired by the next.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if c.store == nil {
		return false, 0, errNotInitialized
	}
	key := c.RateLimitKey(scope)
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if window > 0 {
		if err := c.store.ExpireNX(ctx, key, window).Err(); err != nil {
			return false, count, err
		}
	}
	return count <= limit, count, nil
}

func (c *Client) RateLimitKey(scope string) string {
	return c.keyspace().key("rate_limit", scope)
}

// SessionKey returns the key holding the session with id sid.
func (c *Client) SessionKey(sid string) string {
	return c.keyspace().key("session", sid)
}

func (c *Client) keyspace() Keyspace {
	if c.keys == "" {
		return DefaultKeyspace
	}
	return c.keys
}

func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Ping(ctx).Err()
}

// Close is a no-op on a client that never connected.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
