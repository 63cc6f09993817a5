package cronjob

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/repository"
)

type recordingPurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *recordingPurger) PurgeDeleted(_ context.Context, before time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, before)
	return int64(len(p.cutoffs)), p.err
}

func (p *recordingPurger) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestRunOnce_UsesRetentionCutoff(t *testing.T) {
	p := &recordingPurger{}
	s := NewScheduler(p, "@daily", 24*time.Hour, nil)
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, fixed.Add(-24*time.Hour), p.cutoffs[0])
}

func TestRunOnce_Error(t *testing.T) {
	p := &recordingPurger{err: errors.New("db gone")}
	s := NewScheduler(p, "@daily", time.Hour, nil)

	n, err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRunOnce_PurgesRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	p, err := repo.Create(ctx, domain.NewProject{Name: "old"})
	require.NoError(t, err)
	ok, err := repo.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	s := NewScheduler(repo, "@daily", 0, nil)
	s.now = func() time.Time { return time.Now().Add(time.Second) }

	n, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStart_RunsOnSchedule(t *testing.T) {
	p := &recordingPurger{}
	s := NewScheduler(p, "* * * * * *", time.Hour, nil)
	require.NoError(t, s.Start())
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return p.calls() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&recordingPurger{}, "not a schedule", time.Hour, nil)
	assert.Error(t, s.Start())
}
