package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

// runContract exercises the behaviour every backend has to share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		repo := newRepo(t)
		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		p, err := repo.Create(ctx, domain.NewProject{Name: "Mangrove A", Location: "Puttalam", CarbonSaved: 12.5})
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.True(t, strings.HasPrefix(p.ID, domain.IDPrefix+"-"))
		assert.Equal(t, "Mangrove A", p.Name)
		assert.Equal(t, "Puttalam", p.Location)
		assert.Equal(t, 12.5, p.CarbonSaved)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("create requires name", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, domain.NewProject{})
		assert.Error(t, err)
	})

	t.Run("list keeps creation order", func(t *testing.T) {
		repo := newRepo(t)
		for _, name := range []string{"first", "second", "third"} {
			_, err := repo.Create(ctx, domain.NewProject{Name: name})
			require.NoError(t, err)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "first", items[0].Name)
		assert.Equal(t, "second", items[1].Name)
		assert.Equal(t, "third", items[2].Name)
	})

	t.Run("soft delete hides project once", func(t *testing.T) {
		repo := newRepo(t)
		keep, err := repo.Create(ctx, domain.NewProject{Name: "keep"})
		require.NoError(t, err)
		drop, err := repo.Create(ctx, domain.NewProject{Name: "drop"})
		require.NoError(t, err)

		ok, err := repo.SoftDelete(ctx, drop.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.SoftDelete(ctx, drop.ID)
		require.NoError(t, err)
		assert.False(t, ok, "second delete of the same id")

		ok, err = repo.SoftDelete(ctx, "bluecarbon-missing")
		require.NoError(t, err)
		assert.False(t, ok)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, keep.ID, items[0].ID)
	})

	t.Run("purge removes only old deletions", func(t *testing.T) {
		repo := newRepo(t)
		p, err := repo.Create(ctx, domain.NewProject{Name: "gone"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, domain.NewProject{Name: "live"})
		require.NoError(t, err)

		ok, err := repo.SoftDelete(ctx, p.ID)
		require.NoError(t, err)
		require.True(t, ok)

		n, err := repo.PurgeDeleted(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		n, err = repo.PurgeDeleted(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.PurgeDeleted(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "live", items[0].Name)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}
