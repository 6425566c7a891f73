package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "directory:nba_players"

type storedSnapshot struct {
	FetchedAt time.Time `json:"fetched_at"`
	Players   []Player  `json:"players"`
}

// RedisStore keeps the last fetched player list so a restarted process does
// not have to hit the upstream API again.
type RedisStore struct {
	rdb redis.Cmdable
	key string
}

func NewRedisStore(rdb redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]Player, time.Time, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var stored storedSnapshot
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, time.Time{}, err
	}
	return stored.Players, stored.FetchedAt, nil
}

func (s *RedisStore) Save(ctx context.Context, players []Player, fetchedAt time.Time, ttl time.Duration) error {
	payload, err := json.Marshal(storedSnapshot{FetchedAt: fetchedAt, Players: players})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, payload, ttl).Err()
}
