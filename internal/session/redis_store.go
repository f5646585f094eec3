package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const sessionKeyPrefix = "session:"

type RedisStore struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisStore(client rueidis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()

	cmd := s.client.B().Set().Key(s.key(id)).Value("0").
		Ex(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}

	return id, nil
}

func (s *RedisStore) SetUserID(ctx context.Context, sessionID string, userID uint) error {
	cmd := s.client.B().Set().Key(s.key(sessionID)).
		Value(strconv.FormatUint(uint64(userID), 10)).
		Ex(s.ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *RedisStore) UserID(ctx context.Context, sessionID string) (uint, bool, error) {
	cmd := s.client.B().Get().Key(s.key(sessionID)).Build()
	result := s.client.Do(ctx, cmd)

	val, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, false, nil
		}
		return 0, false, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, false, nil
	}

	return uint(id), true, nil
}

func (s *RedisStore) AddFlash(ctx context.Context, sessionID string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return err
	}

	key := s.flashKey(sessionID)
	cmd := s.client.B().Rpush().Key(key).Element(string(payload)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return err
	}

	expire := s.client.B().Expire().Key(key).Seconds(int64(s.ttl.Seconds())).Build()
	return s.client.Do(ctx, expire).Error()
}

func (s *RedisStore) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	key := s.flashKey(sessionID)

	cmd := s.client.B().Lrange().Key(key).Start(0).Stop(-1).Build()
	entries, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}
		return nil, err
	}

	if len(entries) == 0 {
		return nil, nil
	}

	del := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, del).Error(); err != nil {
		return nil, err
	}

	flashes := make([]Flash, 0, len(entries))
	for _, entry := range entries {
		var f Flash
		if err := json.Unmarshal([]byte(entry), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}

	return flashes, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	cmd := s.client.B().Del().
		Key(s.key(sessionID)).
		Key(s.flashKey(sessionID)).
		Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *RedisStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisStore) flashKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + ":flash"
}
