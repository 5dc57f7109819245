// Package cache provides a small JSON read-through cache over Redis for
// list-shaped responses. A miss is not an error; callers fall back to the
// database and repopulate.
package cache

import (
	"context"
	"encoding/json"
	"time"

	pkgredis "pasahero-backend/pkg/redis"

	"github.com/redis/go-redis/v9"
)

// ListTTL bounds staleness of cached list responses.
const ListTTL = 2 * time.Minute

type Manager struct {
	client *redis.Client
	prefix string
}

func NewManager(client *pkgredis.Client, prefix string) *Manager {
	return &Manager{client: client.GetClient(), prefix: prefix}
}

// Get unmarshals the cached value for key into dest and reports whether the
// key was present.
func (m *Manager) Get(key string, dest interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := m.client.Get(ctx, m.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) Set(key string, value interface{}, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return m.client.Set(ctx, m.prefix+key, data, ttl).Err()
}

func (m *Manager) Delete(keys ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = m.prefix + key
	}

	return m.client.Del(ctx, prefixed...).Err()
}
