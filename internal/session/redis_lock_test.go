package session

import (
	"context"
	"fmt"
	"testing"

	sessionerrors "go-presence/internal/session/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialTokens() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("token-%d", n)
	}
}

func TestRedisStore_Lock(t *testing.T) {
	ctx := context.Background()
	lockKey := LockKey("u1")

	t.Run("second holder is refused", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectSetNX(lockKey, "token-1", lockTTL).SetVal(true)
		mock.ExpectSetNX(lockKey, "token-2", lockTTL).SetVal(false)
		mock.ExpectEvalSha(unlockScript.Hash(), []string{lockKey}, "token-1").SetVal(int64(1))

		store := &RedisStore{rdb: rdb, newToken: sequentialTokens()}
		unlock, err := store.Lock(ctx, "u1")
		require.NoError(t, err)

		_, err = store.Lock(ctx, "u1")
		assert.ErrorIs(t, err, sessionerrors.ErrWorkflowInProgress)

		unlock()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unlock only releases its own token", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		// token-1 expires, token-2 takes over, then the first holder unlocks.
		mock.ExpectSetNX(lockKey, "token-1", lockTTL).SetVal(true)
		mock.ExpectSetNX(lockKey, "token-2", lockTTL).SetVal(true)
		mock.ExpectEvalSha(unlockScript.Hash(), []string{lockKey}, "token-1").SetVal(int64(0))
		mock.ExpectEvalSha(unlockScript.Hash(), []string{lockKey}, "token-2").SetVal(int64(1))

		store := &RedisStore{rdb: rdb, newToken: sequentialTokens()}
		stale, err := store.Lock(ctx, "u1")
		require.NoError(t, err)
		current, err := store.Lock(ctx, "u1")
		require.NoError(t, err)

		stale()
		current()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock error propagates", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectSetNX(lockKey, "token-1", lockTTL).SetErr(assert.AnError)

		store := &RedisStore{rdb: rdb, newToken: sequentialTokens()}
		_, err := store.Lock(ctx, "u1")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestNewRedisStore_RandomLockTokens(t *testing.T) {
	store := NewRedisStore(nil)
	assert.NotEqual(t, store.newToken(), store.newToken())
}
