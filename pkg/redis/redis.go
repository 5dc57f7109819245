package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"pasahero-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with the app's connection settings.
type Client struct {
	client *redis.Client
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

func NewClient(cfg config.RedisConfig) *Client {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection test failed: %v", err)
	} else {
		log.Println("Redis connected successfully")
	}

	return &Client{client: client}
}

// NewClientFromAddr builds a client for a raw address. Used by tests with
// miniredis.
func NewClientFromAddr(addr string) *Client {
	return &Client{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// GetClient returns the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

func (c *Client) HealthCheck() HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := c.client.Ping(ctx).Err()
	status := HealthStatus{
		IsConnected:    err == nil,
		ResponseTime:   time.Since(start),
		ConnectionInfo: c.client.Options().Addr,
	}
	if err != nil {
		status.Error = err.Error()
	}

	return status
}

func (c *Client) Close() error {
	return c.client.Close()
}
