package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

func TestMemoryRepository(t *testing.T) {
	runContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_ListReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, domain.NewProject{Name: "original"})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Name = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Name)
}

func TestMemoryRepository_PurgeUsesDeletionTime(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	p, err := repo.Create(ctx, domain.NewProject{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, clock, p.CreatedAt)

	clock = clock.Add(48 * time.Hour)
	ok, err := repo.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// created before the cutoff but deleted after it
	n, err := repo.PurgeDeleted(ctx, clock.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.PurgeDeleted(ctx, clock.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
