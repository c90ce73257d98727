// Package sequence hands out invoice numbers of the form INV-YYYYMMDD-NNNNN.
// The counter restarts every day.
package sequence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type Generator interface {
	Next(ctx context.Context) (string, error)
}

func Format(day time.Time, n int64) string {
	return fmt.Sprintf("INV-%s-%05d", day.Format("20060102"), n)
}

type RedisGenerator struct {
	redis *cache.RedisClient
	now   func() time.Time
}

func NewRedisGenerator(redis *cache.RedisClient) *RedisGenerator {
	return &RedisGenerator{redis: redis, now: time.Now}
}

func (g *RedisGenerator) Next(ctx context.Context) (string, error) {
	day := g.now()
	key := "invoice:seq:" + day.Format("20060102")
	n, err := g.redis.Incr(ctx, key, 48*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to increment invoice sequence: %w", err)
	}
	return Format(day, n), nil
}

// PostgresGenerator keeps one counter row per day. It runs on the caller's
// transaction, so a rolled back sale releases its number.
type PostgresGenerator struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresGenerator(db *sqlx.DB) *PostgresGenerator {
	return &PostgresGenerator{db: db, now: time.Now}
}

func (g *PostgresGenerator) Next(ctx context.Context) (string, error) {
	day := g.now()
	query := `
        INSERT INTO invoice_counters (day, value) VALUES ($1, 1)
        ON CONFLICT (day) DO UPDATE SET value = invoice_counters.value + 1
        RETURNING value
    `
	var n int64
	if err := sqlx.GetContext(ctx, postgres.Executor(ctx, g.db), &n, query, day.Format("2006-01-02")); err != nil {
		return "", fmt.Errorf("failed to increment invoice sequence: %w", err)
	}
	return Format(day, n), nil
}

type MemoryGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
	now      func() time.Time
}

func NewMemoryGenerator() *MemoryGenerator {
	return &MemoryGenerator{counters: map[string]int64{}, now: time.Now}
}

func (g *MemoryGenerator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := g.now()
	key := day.Format("20060102")
	g.counters[key]++
	return Format(day, g.counters[key]), nil
}
