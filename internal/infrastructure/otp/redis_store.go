package otp

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldCode        = "code"
	fieldCreatedAt   = "created_at"
	fieldAttempts    = "attempts"
	fieldLastSent    = "last_sent"
	fieldLockedUntil = "locked_until"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by a Redis hash per email with a
// TTL of LockWindow, so challenge state is shared across server instances
// and expires on its own.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, prefix: "otp:"}
}

func (s *redisStore) key(email string) string {
	return s.prefix + normalizeEmail(email)
}

func (s *redisStore) Put(ctx context.Context, email, code string) error {
	key := s.key(email)
	now := time.Now().Unix()
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldCode, code, fieldCreatedAt, now, fieldLastSent, now)
	pipe.HSetNX(ctx, key, fieldAttempts, 0)
	pipe.Expire(ctx, key, LockWindow)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Verify(ctx context.Context, email, code string) (bool, error) {
	key := s.key(email)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if len(fields) == 0 || fields[fieldCode] == "" {
		return false, nil
	}
	createdAt, _ := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if time.Since(time.Unix(createdAt, 0)) > CodeExpiry {
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	if fields[fieldCode] != code {
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) Check(ctx context.Context, email, code string) (bool, error) {
	key := s.key(email)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if len(fields) == 0 || fields[fieldCode] == "" {
		return false, nil
	}
	createdAt, _ := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if time.Since(time.Unix(createdAt, 0)) > CodeExpiry {
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return fields[fieldCode] == code, nil
}

func (s *redisStore) CanSend(ctx context.Context, email string) (bool, error) {
	key := s.key(email)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return true, nil
	}
	now := time.Now()
	if lockedUntil, _ := strconv.ParseInt(fields[fieldLockedUntil], 10, 64); lockedUntil > 0 {
		if now.Before(time.Unix(lockedUntil, 0)) {
			return false, nil
		}
	}
	attempts, _ := strconv.Atoi(fields[fieldAttempts])
	if attempts >= MaxSends {
		lock := now.Add(LockWindow)
		pipe := s.client.TxPipeline()
		pipe.HSet(ctx, key, fieldLockedUntil, lock.Unix())
		pipe.Expire(ctx, key, LockWindow)
		if _, err := pipe.Exec(ctx); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *redisStore) IncrementAttempts(ctx context.Context, email string) error {
	key := s.key(email)
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldAttempts, 1)
	pipe.Expire(ctx, key, LockWindow)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Reset(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
