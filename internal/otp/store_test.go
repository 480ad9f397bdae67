package otp

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewWithClient(db)

	mock.ExpectSetNX("otp:+70000000001:cooldown", "1", 60*time.Second).SetVal(true)
	mock.Regexp().ExpectSet(`otp:\+70000000001`, `^\d{6}$`, 5*time.Minute).SetVal("OK")

	code, err := store.Issue(context.Background(), "+70000000001")

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssue_Cooldown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewWithClient(db)

	// Повторный запрос в течение минуты отклоняется
	mock.ExpectSetNX("otp:+70000000001:cooldown", "1", 60*time.Second).SetVal(false)

	_, err := store.Issue(context.Background(), "+70000000001")

	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := NewWithClient(db)

		mock.ExpectGetDel("otp:+70000000001").SetVal("123456")

		assert.NoError(t, store.Verify(context.Background(), "+70000000001", "123456"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong code", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := NewWithClient(db)

		mock.ExpectGetDel("otp:+70000000001").SetVal("123456")

		err := store.Verify(context.Background(), "+70000000001", "654321")
		assert.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("expired or never issued", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := NewWithClient(db)

		mock.ExpectGetDel("otp:+70000000001").RedisNil()

		err := store.Verify(context.Background(), "+70000000001", "123456")
		assert.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("code is single use", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := NewWithClient(db)

		mock.ExpectGetDel("otp:+70000000001").SetVal("123456")
		mock.ExpectGetDel("otp:+70000000001").RedisNil()

		require.NoError(t, store.Verify(context.Background(), "+70000000001", "123456"))
		assert.ErrorIs(t, store.Verify(context.Background(), "+70000000001", "123456"), ErrCodeInvalid)
	})
}

// Проверяем что NewWithClient действительно использует переданный клиент.
func TestNewWithClient(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	store := NewWithClient(rdb)
	assert.Same(t, rdb, store.redis)
}
