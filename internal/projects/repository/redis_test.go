package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

func setupRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, mr
}

func TestRedisRepository(t *testing.T) {
	runContract(t, func(t *testing.T) Repository {
		repo, _ := setupRedisRepo(t)
		return repo
	})
}

func TestRedisRepository_Keys(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, domain.NewProject{Name: "Seagrass", CarbonSaved: 3})
	require.NoError(t, err)

	assert.True(t, mr.Exists(projectKeyPrefix+p.ID))
	members, err := mr.ZMembers(liveIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, members)

	ok, err := repo.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// document survives until purge
	assert.True(t, mr.Exists(projectKeyPrefix+p.ID))
	deleted, err := mr.ZMembers(deletedIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, deleted)
}

func TestRedisRepository_ListSkipsDanglingIndex(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, domain.NewProject{Name: "kept"})
	require.NoError(t, err)
	_, err = mr.ZAdd(liveIndexKey, 0, "bluecarbon-orphan")
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
}

func TestRedisRepository_Unavailable(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	mr.Close()

	ctx := context.Background()
	_, err := repo.List(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.Ping(ctx))
}

// failZAdd rejects any command batch carrying a ZADD, the way a dropped
// connection would before EXEC reaches the server.
type failZAdd struct{}

var errZAddRejected = errors.New("zadd rejected")

func hasZAdd(cmds ...redis.Cmder) bool {
	for _, c := range cmds {
		if c.Name() == "zadd" {
			return true
		}
	}
	return false
}

func (failZAdd) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failZAdd) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if hasZAdd(cmd) {
			return errZAddRejected
		}
		return next(ctx, cmd)
	}
}

func (failZAdd) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if hasZAdd(cmds...) {
			return errZAddRejected
		}
		return next(ctx, cmds)
	}
}

func TestRedisRepository_CreateLeavesNothingOnFailure(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	repo.client.AddHook(failZAdd{})

	_, err := repo.Create(context.Background(), domain.NewProject{Name: "half written"})
	require.ErrorIs(t, err, errZAddRejected)

	assert.Empty(t, mr.Keys(), "no document without its index entry")
}

func TestRedisRepository_SoftDeleteLeavesNothingOnFailure(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()
	p, err := repo.Create(ctx, domain.NewProject{Name: "kept"})
	require.NoError(t, err)

	repo.client.AddHook(failZAdd{})
	_, err = repo.SoftDelete(ctx, p.ID)
	require.ErrorIs(t, err, errZAddRejected)

	live, err := mr.ZMembers(liveIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, live, "project stays live when the move fails")
	assert.False(t, mr.Exists(deletedIndexKey))
}
