// file: database/redis.go
package database

import (
	"context"
	"github.com/redis/go-redis/v9"
	"log"
	"os"
	"time"
)

var RDB *redis.Client
var Ctx = context.Background()

// InitRedis 初始化排行榜缓存。Redis 不可用时降级为直查数据库，
// 只影响读路径性能，不影响计分正确性，所以这里不做 Fatal。
func InitRedis() {
	addr := os.Getenv("SECXPLORE_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("SECXPLORE_REDIS_PASSWORD"),
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, scoreboard cache disabled: %v", err)
		RDB = nil
		return
	}

	log.Println("Redis connection successfully established.")
}
