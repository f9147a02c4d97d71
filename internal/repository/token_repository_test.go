package repository

import (
	"context"
	"testing"
	"time"

	redisapp "stylemix/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupTokenRepo() (*RedisTokenRepo, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &RedisTokenRepo{Client: &redisapp.Client{Client: db}}, mock
}

func TestSaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()
	exp := 7 * 24 * time.Hour

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey("42", "tok"), "1", exp).SetVal("OK")
		err := repo.SaveRefreshToken(ctx, "42", "tok", exp)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet(refreshTokenKey("42", "tok"), "1", exp).SetErr(redis.ErrClosed)
		err := repo.SaveRefreshToken(ctx, "42", "tok", exp)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}

func TestGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()

	t.Run("token present", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey("42", "tok")).SetVal("1")
		ok, err := repo.GetRefreshToken(ctx, "42", "tok")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("token absent", func(t *testing.T) {
		mock.ExpectGet(refreshTokenKey("42", "gone")).RedisNil()
		ok, err := repo.GetRefreshToken(ctx, "42", "gone")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()

	mock.ExpectDel(refreshTokenKey("42", "tok")).SetVal(1)
	err := repo.DeleteRefreshToken(ctx, "42", "tok")
	assert.NoError(t, err)
}

func TestDeleteAllUserTokens(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTokenRepo()

	t.Run("deletes every key", func(t *testing.T) {
		keys := []string{
			refreshTokenKey("42", "a"),
			refreshTokenKey("42", "b"),
		}
		mock.ExpectKeys(refreshTokenKey("42", "*")).SetVal(keys)
		mock.ExpectDel(keys...).SetVal(2)

		err := repo.DeleteAllUserTokens(ctx, "42")
		assert.NoError(t, err)
	})

	t.Run("no keys is a no-op", func(t *testing.T) {
		mock.ExpectKeys(refreshTokenKey("42", "*")).SetVal([]string{})
		err := repo.DeleteAllUserTokens(ctx, "42")
		assert.NoError(t, err)
	})
}
