package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

// Repository is the persistence layer behind the store's REST endpoints.
type Repository interface {
	// List returns live projects in creation order.
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, in domain.NewProject) (*domain.Project, error)
	// SoftDelete hides a project. It reports false when no live project has that id.
	SoftDelete(ctx context.Context, publicID string) (bool, error)
	// PurgeDeleted permanently removes projects soft-deleted before the cutoff.
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

const maxIDAttempts = 5

var errIDExhausted = fmt.Errorf("failed to generate unique project id")

func validate(in domain.NewProject) error {
	if in.Name == "" {
		return fmt.Errorf("name required")
	}
	return nil
}
