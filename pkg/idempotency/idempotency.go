// Package idempotency guards request handlers against duplicate submissions
// carrying the same client key.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/pkg/cache"
)

var (
	// ErrInFlight means another request with the same key is still running.
	ErrInFlight = errors.New("request with this idempotency key is in progress")
	// ErrKeyReused means the key already completed for a different request body.
	ErrKeyReused = errors.New("idempotency key was used with a different request")
)

// Store keys are expected to be scoped to the caller. fingerprint identifies
// the request body the key was first used with.
type Store interface {
	// Acquire returns the stored result id when the key already completed.
	// Otherwise it claims the key; release must be called once the request ends.
	Acquire(ctx context.Context, key, fingerprint string) (resultID string, release func(), err error)
	Complete(ctx context.Context, key, fingerprint, resultID string) error
}

// Fingerprint hashes the JSON form of a decoded request body.
func Fingerprint(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint request: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// ScopedKey ties a client key to the caller that sent it.
func ScopedKey(owner, key string) string {
	return owner + ":" + key
}

type record struct {
	ResultID    string `json:"result_id"`
	Fingerprint string `json:"fingerprint"`
}

func (r record) match(fingerprint string) (string, error) {
	if r.Fingerprint != fingerprint {
		return "", ErrKeyReused
	}
	return r.ResultID, nil
}

type RedisStore struct {
	redis     *cache.RedisClient
	prefix    string
	lockTTL   time.Duration
	resultTTL time.Duration
}

func NewRedisStore(redis *cache.RedisClient, prefix string) *RedisStore {
	return &RedisStore{
		redis:     redis,
		prefix:    prefix,
		lockTTL:   30 * time.Second,
		resultTTL: 24 * time.Hour,
	}
}

func (s *RedisStore) resultKey(key string) string { return s.prefix + ":result:" + key }
func (s *RedisStore) lockKey(key string) string   { return s.prefix + ":lock:" + key }

func (s *RedisStore) Acquire(ctx context.Context, key, fingerprint string) (string, func(), error) {
	if id, err := s.lookup(ctx, key, fingerprint); err != nil || id != "" {
		return id, nil, err
	}

	lock, err := s.redis.Obtain(ctx, s.lockKey(key), s.lockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockNotObtained) {
			return "", nil, ErrInFlight
		}
		return "", nil, fmt.Errorf("failed to obtain idempotency lock: %w", err)
	}
	release := func() { _ = lock.Release(context.Background()) }

	// the previous holder may have finished between lookup and Obtain
	id, err := s.lookup(ctx, key, fingerprint)
	if err != nil || id != "" {
		release()
		return id, nil, err
	}
	return "", release, nil
}

func (s *RedisStore) lookup(ctx context.Context, key, fingerprint string) (string, error) {
	var rec record
	found, err := s.redis.GetObject(ctx, s.resultKey(key), &rec)
	if err != nil {
		return "", fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if !found {
		return "", nil
	}
	return rec.match(fingerprint)
}

func (s *RedisStore) Complete(ctx context.Context, key, fingerprint, resultID string) error {
	rec := record{ResultID: resultID, Fingerprint: fingerprint}
	return s.redis.SetObject(ctx, s.resultKey(key), rec, s.resultTTL)
}

type MemoryStore struct {
	mu       sync.Mutex
	inFlight map[string]bool
	results  map[string]record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{inFlight: map[string]bool{}, results: map[string]record{}}
}

func (s *MemoryStore) Acquire(_ context.Context, key, fingerprint string) (string, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.results[key]; ok {
		id, err := rec.match(fingerprint)
		return id, nil, err
	}
	if s.inFlight[key] {
		return "", nil, ErrInFlight
	}
	s.inFlight[key] = true
	return "", func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) Complete(_ context.Context, key, fingerprint, resultID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = record{ResultID: resultID, Fingerprint: fingerprint}
	return nil
}
