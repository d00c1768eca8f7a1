package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/askit4care/careline/pkg/domain/session"
	"github.com/go-redis/redis/v8"
)

const SessionKeyPattern = "session:%s"

// Config holds the redis connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
	TTL      time.Duration
}

// Cache keeps session rows in redis so the hot path avoids a database
// round trip per inbound message.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(config Config) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	client := redis.NewClient(options)

	return NewCacheWithClient(client, config.TTL), nil
}

// NewCacheWithClient wraps an existing redis client. Tests inject a
// redismock client through here.
func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) GetSession(ctx context.Context, userID string) (*session.Session, error) {
	key := fmt.Sprintf(SessionKeyPattern, userID)
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var entity session.Session
	if err := json.Unmarshal([]byte(payload), &entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &entity, nil
}

func (c *Cache) SaveSession(ctx context.Context, entity *session.Session) error {
	key := fmt.Sprintf(SessionKeyPattern, entity.UserID)
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Set(ctx, key, string(payload), c.ttl).Err()
}

func (c *Cache) DeleteSession(ctx context.Context, userID string) error {
	key := fmt.Sprintf(SessionKeyPattern, userID)
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping verifies the redis connection at startup.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
