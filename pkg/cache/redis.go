package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizlink/config"
	"quizlink/internal/dto"
)

const quizSummaryTTL = 24 * time.Hour

// RedisCache backs two best-effort concerns: the sanitized quiz metadata
// served alongside link validation, and the reload-abuse disruption counters
// (it satisfies guard.CounterStore).
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(cfg *config.Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func quizKey(id uint) string {
	return fmt.Sprintf("quiz:summary:%d", id)
}

func (c *RedisCache) SetQuizSummary(summary *dto.QuizSummaryDTO) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, quizKey(summary.ID), data, quizSummaryTTL).Err()
}

func (c *RedisCache) GetQuizSummary(id uint) (*dto.QuizSummaryDTO, error) {
	data, err := c.client.Get(c.ctx, quizKey(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var summary dto.QuizSummaryDTO
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *RedisCache) InvalidateQuizSummary(id uint) error {
	return c.client.Del(c.ctx, quizKey(id)).Err()
}

// Incr, Get and Clear implement guard.CounterStore on Redis so disruption
// counters survive reloads and server restarts.
func (c *RedisCache) Incr(key string) (int, error) {
	n, err := c.client.Incr(c.ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *RedisCache) Get(key string) (int, error) {
	n, err := c.client.Get(c.ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c *RedisCache) Clear(key string) error {
	return c.client.Del(c.ctx, key).Err()
}
