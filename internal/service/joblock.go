package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/timmy/solarmatch/internal/config"
	"github.com/timmy/solarmatch/internal/logger"
)

// ErrLockTimeout is returned when another matching run holds a job's lock for
// longer than the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for job lock")

// JobLocker serialises matching runs for the same job across processes.
type JobLocker interface {
	Lock(ctx context.Context, jobID int64) (unlock func(), err error)
}

// NoopLocker never blocks. The unique match index still prevents duplicates
// when it is used.
type NoopLocker struct{}

// Lock returns immediately.
func (NoopLocker) Lock(context.Context, int64) (func(), error) {
	return func() {}, nil
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const defaultLockPoll = 50 * time.Millisecond

// RedisJobLocker is a JobLocker backed by SET NX PX keys.
type RedisJobLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
	prefix string
}

// NewRedisJobLocker creates a locker. ttl bounds how long a crashed holder keeps
// the lock; wait bounds how long Lock polls before giving up.
func NewRedisJobLocker(client *redis.Client, ttl, wait time.Duration) *RedisJobLocker {
	return &RedisJobLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		poll:   defaultLockPoll,
		prefix: "solarmatch:lock:job:",
	}
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Lock blocks until the job's lock is held, the wait elapses, or ctx is done.
func (l *RedisJobLocker) Lock(ctx context.Context, jobID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", l.prefix, jobID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for job %d: %w", jobID, err)
		}
		if ok {
			return func() { l.release(ctx, key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("job %d: %w", jobID, ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}
}

func (l *RedisJobLocker) release(ctx context.Context, key, token string) {
	// The caller's context may already be cancelled; release regardless.
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("lock_key", key).Warn("Failed to release job lock")
	}
}
