package otp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/accounts/internal/pkg/constants"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	storeContract(t, func(gen Generator) Store {
		_, client := setupMiniredis(t)
		return NewRedisStore(client, WithGenerator(gen))
	})
}

func TestRedisStore_IssueSetsTTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	s := NewRedisStore(client, WithTTL(10*time.Minute), WithGenerator(sequence(246810)))

	entry, err := s.Issue(context.Background(), "+15550001")
	require.NoError(t, err)
	assert.Equal(t, 246810, entry.Code)

	k := fmt.Sprintf(constants.KeyPasswordResetOTP, "+15550001")
	assert.True(t, mr.Exists(k))
	assert.Equal(t, 10*time.Minute, mr.TTL(k))
}

func TestRedisStore_ExpiredCode(t *testing.T) {
	mr, client := setupMiniredis(t)
	s := NewRedisStore(client, WithTTL(time.Minute), WithGenerator(sequence(135791)))
	ctx := context.Background()

	_, err := s.Issue(ctx, "555")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	assert.ErrorIs(t, s.Confirm(ctx, "555", "135791"), ErrNoPendingCode)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	mr, client := setupMiniredis(t)
	s := NewRedisStore(client)

	require.NoError(t, mr.Set(fmt.Sprintf(constants.KeyPasswordResetOTP, "555"), "not-json"))

	err := s.Confirm(context.Background(), "555", "123456")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPendingCode)
	assert.NotErrorIs(t, err, ErrCodeMismatch)
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	s := NewRedisStore(client)
	mr.Close()

	ctx := context.Background()
	_, err := s.Issue(ctx, "555")
	assert.Error(t, err)

	err = s.Confirm(ctx, "555", "123456")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPendingCode)

	assert.Error(t, s.Expire(ctx, "555"))
}
