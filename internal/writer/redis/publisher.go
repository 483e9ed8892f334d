// internal/writer/redis/publisher.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// commander is the subset of the go-redis client the publisher uses.
type commander interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
	Key      string
	Timeout  time.Duration
}

// Publisher pushes snapshot documents to a pub/sub channel and keeps
// the latest one under a plain key.
type Publisher struct {
	cmd     commander
	channel string
	key     string
	timeout time.Duration
}

// NewPublisher connects and pings the server before returning.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.Addr == "" {
		return nil, errors.New("writer redis: addr required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("writer redis: ping %s: %w", cfg.Addr, err)
	}

	return newPublisher(client, cfg), nil
}

func newPublisher(cmd commander, cfg Config) *Publisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Publisher{
		cmd:     cmd,
		channel: cfg.Channel,
		key:     cfg.Key,
		timeout: cfg.Timeout,
	}
}

// Publish sends doc to the channel, then stores it as the latest snapshot.
// Either step is skipped when its name is empty.
func (p *Publisher) Publish(doc []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if p.channel != "" {
		if err := p.cmd.Publish(ctx, p.channel, doc).Err(); err != nil {
			return fmt.Errorf("writer redis: publish %s: %w", p.channel, err)
		}
	}
	if p.key != "" {
		if err := p.cmd.Set(ctx, p.key, doc, 0).Err(); err != nil {
			return fmt.Errorf("writer redis: set %s: %w", p.key, err)
		}
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.cmd.Close()
}
