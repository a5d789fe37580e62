// Package idempotency guards operations keyed by a client supplied
// Idempotency-Key so that retries replay the first result.
package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrAlreadyInProgress is returned while another call with the same key runs.
	ErrAlreadyInProgress = errors.New("idempotency: operation already in progress")
	// ErrInvalidState is returned when the stored state cannot be interpreted.
	ErrInvalidState = errors.New("idempotency: invalid state")
)

// State is the stored lifecycle of a key.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs fn at most once per key within the state TTL.
//
// The first successful result is stored and returned to later callers with
// replayed set. A failed fn releases the key so the client may retry.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) ([]byte, error), opts ...Option) (result []byte, replayed bool, err error)
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
	separator           = "|"
)

// Option customises a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress key blocks other callers.
func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

// WithStateTTL sets how long a completed result is replayed.
func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// StateTracker implements Idempotency on top of Redis.
type StateTracker struct {
	client redis.UniversalClient
	prefix string
}

// New returns a StateTracker storing keys under prefix, e.g. "idempotency:user:".
func New(client redis.UniversalClient, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}

	return &StateTracker{
		client: client,
		prefix: prefix,
	}
}

// Exec implements Idempotency.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) ([]byte, error), opts ...Option) ([]byte, bool, error) {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
		stateTTL:     defaultStateTTL,
	}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	fk := s.prefix + key

	acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), execOpt.lockDuration).Result()
	if err != nil {
		return nil, false, err
	}

	if !acquired {
		stored, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SetNX and Get
			return s.Exec(ctx, key, fn, opts...)
		}
		if err != nil {
			return nil, false, err
		}

		return decode(stored)
	}

	result, err := fn(ctx)
	if err != nil {
		if delErr := s.client.Del(context.WithoutCancel(ctx), fk).Err(); delErr != nil {
			return nil, false, errors.Join(err, delErr)
		}
		return nil, false, err
	}

	if err := s.client.Set(ctx, fk, StateCompleted.String()+separator+string(result), execOpt.stateTTL).Err(); err != nil {
		return nil, false, err
	}

	return result, false, nil
}

func decode(stored string) ([]byte, bool, error) {
	if stored == StateInProgress.String() {
		return nil, false, ErrAlreadyInProgress
	}

	state, payload, found := strings.Cut(stored, separator)
	if !found || state != StateCompleted.String() {
		return nil, false, ErrInvalidState
	}

	return []byte(payload), true, nil
}
