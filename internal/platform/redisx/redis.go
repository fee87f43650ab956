// Package redisx wires the optional Redis client and the distributed locker
// built on it.
package redisx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to addr and pings it once.
func NewClient(ctx context.Context, addr, password string, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	logger.Info("Connected to redis", slog.String("addr", addr))
	return client, nil
}

// Locker grants leases through redislock.
type Locker struct {
	client *redislock.Client
}

var _ ports.Locker = (*Locker)(nil)

// NewLocker builds a Locker over any go-redis client.
func NewLocker(client redislock.RedisClient) *Locker {
	return &Locker{client: redislock.New(client)}
}

func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ports.ErrLockNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}

// LocalLocker always grants the lock. It stands in for Locker when the
// service runs as a single instance without Redis.
type LocalLocker struct{}

var _ ports.Locker = LocalLocker{}

func (LocalLocker) Obtain(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
