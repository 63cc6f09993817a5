package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

const schema = `
create table if not exists projects (
	public_id    text primary key,
	name         text not null,
	description  text not null default '',
	location     text not null default '',
	carbon_saved double precision not null default 0,
	created_at   timestamptz not null default now(),
	updated_at   timestamptz not null default now(),
	deleted_at   timestamptz
);
create index if not exists projects_live_created_idx on projects (created_at) where deleted_at is null;
`

// PostgresRepository stores projects in PostgreSQL through a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the projects table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	for i := 0; i < maxIDAttempts; i++ {
		publicID, err := domain.NewPublicID()
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, name, description, location, carbon_saved)
values ($1, $2, $3, $4, $5)
returning public_id, name, description, location, carbon_saved, created_at;
`
		var p domain.Project
		err = r.db.QueryRow(ctx, q, publicID, in.Name, in.Description, in.Location, in.CarbonSaved).
			Scan(&p.ID, &p.Name, &p.Description, &p.Location, &p.CarbonSaved, &p.CreatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, errIDExhausted
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
select public_id, name, description, location, carbon_saved, created_at
from projects
where deleted_at is null
order by created_at asc, public_id asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Location, &p.CarbonSaved, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where public_id = $1 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PostgresRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	const q = `
delete from projects
where deleted_at is not null and deleted_at < $1;
`
	ct, err := r.db.Exec(ctx, q, before)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}
