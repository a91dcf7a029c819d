package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessionerrors "go-presence/internal/session/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "attendance:session:"
	lockKeyPrefix    = "attendance:workflow:lock:"
	sessionTTL       = 36 * time.Hour
	lockTTL          = 2 * time.Minute
)

func SessionKey(userID, day string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, userID, day)
}

func LockKey(userID string) string {
	return lockKeyPrefix + userID
}

// unlockScript deletes the lock only while it still holds the caller's token,
// so a holder whose lock expired cannot release the next holder's lock.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisStore shares sessions between API instances. Photos are never written.
type RedisStore struct {
	rdb      *redis.Client
	newToken func() string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, newToken: uuid.NewString}
}

func (r *RedisStore) Get(ctx context.Context, userID, day string) (Session, error) {
	val, err := r.rdb.Get(ctx, SessionKey(userID, day)).Result()
	if errors.Is(err, redis.Nil) {
		return New(userID, day), nil
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		zap.L().Warn("drop corrupt attendance session", zap.String("user_id", userID), zap.Error(err))
		return New(userID, day), nil
	}
	return s, nil
}

func (r *RedisStore) Put(ctx context.Context, s Session) error {
	s.Photo = nil
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, SessionKey(s.UserID, s.Day), payload, sessionTTL).Err()
}

func (r *RedisStore) Reset(ctx context.Context, userID, day string) error {
	return r.rdb.Del(ctx, SessionKey(userID, day)).Err()
}

func (r *RedisStore) Lock(ctx context.Context, userID string) (func(), error) {
	lockKey := LockKey(userID)
	token := r.newToken()
	ok, err := r.rdb.SetNX(ctx, lockKey, token, lockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sessionerrors.ErrWorkflowInProgress
	}
	return func() {
		// the request ctx may already be cancelled here
		err := unlockScript.Run(context.Background(), r.rdb, []string{lockKey}, token).Err()
		if err != nil {
			zap.L().Warn("release attendance workflow lock failed", zap.String("user_id", userID), zap.Error(err))
		}
	}, nil
}
