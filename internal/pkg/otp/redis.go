package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/accounts/internal/pkg/constants"
)

// maxConfirmAttempts bounds optimistic retries when the key changes under WATCH
const maxConfirmAttempts = 5

// ErrConfirmContended is returned when every optimistic attempt lost the race
var ErrConfirmContended = errors.New("otp confirm contended")

// RedisStore keeps codes in Redis with a native per-key TTL
type RedisStore struct {
	client redis.UniversalClient
	opts   options
}

// NewRedisStore creates a store on top of an existing client
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisStore{client: client, opts: o}
}

func key(recipient string) string {
	return fmt.Sprintf(constants.KeyPasswordResetOTP, recipient)
}

// Issue writes a fresh code with a single SET, so the last writer wins
func (s *RedisStore) Issue(ctx context.Context, recipient string) (Entry, error) {
	entry, err := s.opts.newEntry()
	if err != nil {
		return Entry{}, err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	if err := s.client.Set(ctx, key(recipient), payload, s.opts.ttl).Err(); err != nil {
		return Entry{}, fmt.Errorf("failed to store otp: %w", err)
	}

	return entry, nil
}

// Confirm deletes the pending code under WATCH so concurrent confirms cannot both succeed
func (s *RedisStore) Confirm(ctx context.Context, recipient, supplied string) error {
	k := key(recipient)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNoPendingCode
		}
		if err != nil {
			return fmt.Errorf("failed to read otp: %w", err)
		}

		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("failed to decode otp entry: %w", err)
		}
		if !matches(entry.Code, supplied) {
			return ErrCodeMismatch
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, k)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxConfirmAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return ErrConfirmContended
}

// Expire drops the pending code for recipient
func (s *RedisStore) Expire(ctx context.Context, recipient string) error {
	if err := s.client.Del(ctx, key(recipient)).Err(); err != nil {
		return fmt.Errorf("failed to expire otp: %w", err)
	}
	return nil
}
