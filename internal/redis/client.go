package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

type SessionData struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = fmt.Errorf("key not found")

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(sessionID string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetSession(sessionID string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+sessionID).Err()
}

// Formula expansion cache. Expanded lines are recomputed on read, so repeat
// expansions of the same (formula, headcount) pair are memoized here.

func expansionKey(formulaID uint, headcount string) string {
	return fmt.Sprintf("expansion:%d:%s", formulaID, headcount)
}

func (c *Client) SetExpansion(formulaID uint, headcount string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal expansion: %w", err)
	}

	return c.rdb.Set(ctx, expansionKey(formulaID, headcount), jsonData, ttl).Err()
}

func (c *Client) GetExpansion(formulaID uint, headcount string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, expansionKey(formulaID, headcount)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get expansion: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

// InvalidateExpansions drops every cached expansion of a formula. Called
// whenever the formula's lines change.
func (c *Client) InvalidateExpansions(formulaID uint) error {
	ctx := context.Background()
	keys, err := c.rdb.Keys(ctx, fmt.Sprintf("expansion:%d:*", formulaID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list expansion keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
