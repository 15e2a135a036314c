package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for recorded turn history.
func counterKey(gameID string) string { return "game:" + gameID + ":turns" }
func turnKey(gameID string, n int64) string {
	return "game:" + gameID + ":turn:" + strconv.FormatInt(n, 10)
}

// TurnRecord pairs a received game state with the turn decided for it.
type TurnRecord struct {
	State      json.RawMessage `json:"state"`
	Turn       json.RawMessage `json:"turn"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// RecordTurn appends one decided turn to the game's history and returns its
// 1-based index.
func (c *Client) RecordTurn(ctx context.Context, gameID string, state, turn json.RawMessage) (int64, error) {
	n, err := c.rdb.Incr(ctx, counterKey(gameID)).Result()
	if err != nil {
		return 0, fmt.Errorf("increment turn counter: %w", err)
	}
	rec := TurnRecord{State: state, Turn: turn, RecordedAt: time.Now().UTC()}
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("marshal turn record: %w", err)
	}
	if err := c.rdb.Set(ctx, turnKey(gameID, n), data, 0).Err(); err != nil {
		return 0, fmt.Errorf("store turn %d: %w", n, err)
	}
	return n, nil
}

// GetTurn retrieves one recorded turn, or nil if absent.
func (c *Client) GetTurn(ctx context.Context, gameID string, n int64) (*TurnRecord, error) {
	data, err := c.rdb.Get(ctx, turnKey(gameID, n)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get turn %d: %w", n, err)
	}
	var rec TurnRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode turn %d: %w", n, err)
	}
	return &rec, nil
}

// TurnCount returns how many turns have been recorded for the game.
func (c *Client) TurnCount(ctx context.Context, gameID string) (int64, error) {
	n, err := c.rdb.Get(ctx, counterKey(gameID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get turn counter: %w", err)
	}
	return n, nil
}

// DeleteGame removes all recorded turns for a game.
func (c *Client) DeleteGame(ctx context.Context, gameID string) error {
	n, err := c.TurnCount(ctx, gameID)
	if err != nil {
		return err
	}
	keys := []string{counterKey(gameID)}
	for i := int64(1); i <= n; i++ {
		keys = append(keys, turnKey(gameID, i))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
