package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Settings describes a single Redis endpoint.
type Settings struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a pooled client and verifies it with PING.
func Connect(ctx context.Context, settings Settings) (*goredis.Client, error) {
	if strings.TrimSpace(settings.Addr) == "" {
		return nil, errors.New("redis address is empty")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:         settings.Addr,
		Password:     settings.Password,
		DB:           settings.DB,
		PoolSize:     20,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
