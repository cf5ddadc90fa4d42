package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/banksim/internal/config"
)

// InitRedis connects to the session store. It returns nil when Redis cannot be
// reached, and the server then runs without token revocation.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Connection to %s failed, continuing without Redis: %v", cfg.Addr(), err)
		rdb.Close()
		return nil
	}

	log.Printf("[REDIS] Connection established to %s", cfg.Addr())
	return rdb
}
