package sequence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	day := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-20240309-00001", Format(day, 1))
	assert.Equal(t, "INV-20240309-12345", Format(day, 12345))
}

func TestMemoryGeneratorRestartsDaily(t *testing.T) {
	g := NewMemoryGenerator()
	day := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return day }

	first, err := g.Next(context.Background())
	require.NoError(t, err)
	second, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-20240309-00001", first)
	assert.Equal(t, "INV-20240309-00002", second)

	day = day.Add(24 * time.Hour)
	next, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-20240310-00001", next)
}

func TestMemoryGeneratorUniqueUnderConcurrency(t *testing.T) {
	g := NewMemoryGenerator()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := g.Next(context.Background())
			require.NoError(t, err)
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
