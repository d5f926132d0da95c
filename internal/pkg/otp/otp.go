package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	// MinCode and MaxCode bound the six digit codes, inclusive
	MinCode = 100000
	MaxCode = 999999

	// DefaultTTL is how long a pending code stays valid
	DefaultTTL = 10 * time.Minute
)

var (
	ErrNoPendingCode = errors.New("no pending code")
	ErrCodeMismatch  = errors.New("code mismatch")
)

// Entry is a pending code for one recipient
type Entry struct {
	Code      int       `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// String returns the code as the six digits delivered to the recipient
func (e Entry) String() string {
	return strconv.Itoa(e.Code)
}

// Store keeps at most one pending code per recipient.
// Confirm must check and delete in one atomic step so a code is consumed once.
type Store interface {
	Issue(ctx context.Context, recipient string) (Entry, error)
	Confirm(ctx context.Context, recipient, supplied string) error
	Expire(ctx context.Context, recipient string) error
}

// Generator produces a code in [MinCode, MaxCode]
type Generator func() (int, error)

// GenerateCode draws a uniformly random code from crypto/rand
func GenerateCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxCode-MinCode+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate otp: %w", err)
	}
	return MinCode + int(n.Int64()), nil
}

// Option configures a Store implementation
type Option func(*options)

type options struct {
	ttl      time.Duration
	now      func() time.Time
	generate Generator
}

func defaultOptions() options {
	return options{
		ttl:      DefaultTTL,
		now:      time.Now,
		generate: GenerateCode,
	}
}

// WithTTL sets how long issued codes stay valid. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithGenerator overrides the code generator
func WithGenerator(g Generator) Option {
	return func(o *options) {
		o.generate = g
	}
}

func (o options) newEntry() (Entry, error) {
	code, err := o.generate()
	if err != nil {
		return Entry{}, err
	}
	if code < MinCode || code > MaxCode {
		return Entry{}, fmt.Errorf("generated otp %d out of range", code)
	}
	now := o.now()
	return Entry{Code: code, IssuedAt: now, ExpiresAt: now.Add(o.ttl)}, nil
}

// matches compares codes as integers. Anything that does not parse never matches.
func matches(code int, supplied string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(supplied))
	if err != nil {
		return false
	}
	return n == code
}
