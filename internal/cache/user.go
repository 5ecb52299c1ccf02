package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rosterd/rosterd/internal/model"
)

// Cache key prefix and TTL for user entries.
const (
	userKeyPrefix = "user:"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = 15 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetUser retrieves a user from cache by id.
// Returns ErrCacheMiss if not found. The cached copy carries no password
// hash; it only serves the read path.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	key := userKeyPrefix + id

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedUser{
		Name:      result["name"],
		Email:     result["email"],
		CreatedAt: result["created_at"],
		UpdatedAt: result["updated_at"],
	}

	return cached.ToUser(id), nil
}

// SetUser stores a user in cache.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userKeyPrefix + user.ID
	cached := user.ToCachedUser()

	fields := map[string]any{
		"name":       cached.Name,
		"email":      cached.Email,
		"created_at": cached.CreatedAt,
		"updated_at": cached.UpdatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultUserTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user from cache.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	key := userKeyPrefix + id

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}

	return nil
}
