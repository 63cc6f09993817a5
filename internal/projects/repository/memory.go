package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

type memoryRecord struct {
	project   domain.Project
	deletedAt time.Time
}

// MemoryRepository keeps projects in process memory. It is the default
// backend for local development.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*memoryRecord
	byID    map[string]*memoryRecord
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[string]*memoryRecord),
		now:  time.Now,
	}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Project, 0, len(r.records))
	for _, rec := range r.records {
		if rec.deletedAt.IsZero() {
			out = append(out, rec.project)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < maxIDAttempts; i++ {
		publicID, err := domain.NewPublicID()
		if err != nil {
			return nil, err
		}
		if _, taken := r.byID[publicID]; taken {
			continue
		}

		rec := &memoryRecord{project: domain.Project{
			ID:          publicID,
			Name:        in.Name,
			Description: in.Description,
			Location:    in.Location,
			CarbonSaved: in.CarbonSaved,
			CreatedAt:   r.now().UTC(),
		}}
		r.records = append(r.records, rec)
		r.byID[publicID] = rec
		p := rec.project
		return &p, nil
	}
	return nil, errIDExhausted
}

func (r *MemoryRepository) SoftDelete(ctx context.Context, publicID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[publicID]
	if !ok || !rec.deletedAt.IsZero() {
		return false, nil
	}
	rec.deletedAt = r.now().UTC()
	return true, nil
}

func (r *MemoryRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	kept := r.records[:0]
	for _, rec := range r.records {
		if !rec.deletedAt.IsZero() && rec.deletedAt.Before(before) {
			delete(r.byID, rec.project.ID)
			purged++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return purged, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }
