package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/thingsinjars/MyHome-sub000/config"
)

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheCommunity caches a community detail payload with expiration
func (s *RedisService) CacheCommunity(communityUUID string, data interface{}, expiration time.Duration) error {
	key := "community:" + communityUUID
	jsonValue, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// GetCachedCommunity gets a community detail payload from cache
func (s *RedisService) GetCachedCommunity(communityUUID string, dest interface{}) error {
	key := "community:" + communityUUID
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// InvalidateCommunity removes a community detail payload from cache.
// 小区层级发生任何变更（加房屋、删房屋、级联删除）后调用。
func (s *RedisService) InvalidateCommunity(communityUUID string) error {
	return s.Client.Del(s.Ctx, "community:"+communityUUID).Err()
}
