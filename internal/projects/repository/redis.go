package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

const (
	projectKeyPrefix = "bluecarbon:project:" // Project JSON: bluecarbon:project:{public_id}
	liveIndexKey     = "bluecarbon:projects" // Sorted set of live ids scored by creation time
	deletedIndexKey  = "bluecarbon:deleted"  // Sorted set of soft-deleted ids scored by deletion time
)

const maxTxAttempts = 5

var errIDTaken = errors.New("project id taken")

// RedisRepository stores each project as a JSON string plus two sorted-set indexes.
type RedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, now: time.Now}
}

func (r *RedisRepository) projectKey(publicID string) string {
	return projectKeyPrefix + publicID
}

func (r *RedisRepository) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	for i := 0; i < maxIDAttempts; i++ {
		publicID, err := domain.NewPublicID()
		if err != nil {
			return nil, err
		}

		p := domain.Project{
			ID:          publicID,
			Name:        in.Name,
			Description: in.Description,
			Location:    in.Location,
			CarbonSaved: in.CarbonSaved,
			CreatedAt:   r.now().UTC(),
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal project: %w", err)
		}

		key := r.projectKey(publicID)
		z := redis.Z{Score: float64(p.CreatedAt.UnixNano()), Member: publicID}

		// document and index are written in one MULTI/EXEC; the watch catches a racing create
		err = r.client.Watch(ctx, func(tx *redis.Tx) error {
			n, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				return errIDTaken
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				pipe.ZAdd(ctx, liveIndexKey, z)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, errIDTaken) || errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		return &p, nil
	}
	return nil, errIDExhausted
}

func (r *RedisRepository) List(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.ZRange(ctx, liveIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.projectKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	out := make([]domain.Project, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a document; skipped until the next purge
			continue
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *RedisRepository) SoftDelete(ctx context.Context, publicID string) (bool, error) {
	for i := 0; i < maxTxAttempts; i++ {
		deleted := false
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			if err := tx.ZScore(ctx, liveIndexKey, publicID).Err(); err != nil {
				return err
			}
			score := float64(r.now().UTC().UnixNano())
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.ZRem(ctx, liveIndexKey, publicID)
				pipe.ZAdd(ctx, deletedIndexKey, redis.Z{Score: score, Member: publicID})
				return nil
			})
			if err == nil {
				deleted = true
			}
			return err
		}, liveIndexKey)

		switch {
		case errors.Is(err, redis.Nil):
			return false, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case err != nil:
			return false, fmt.Errorf("failed to delete project: %w", err)
		}
		return deleted, nil
	}
	return false, fmt.Errorf("failed to delete project %s: index kept changing", publicID)
}

func (r *RedisRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	maxScore := "(" + strconv.FormatInt(before.UTC().UnixNano(), 10)
	ids, err := r.client.ZRangeByScore(ctx, deletedIndexKey, &redis.ZRangeBy{Min: "-inf", Max: maxScore}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to find deleted projects: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = r.projectKey(id)
		members[i] = id
	}

	// Use pipeline for atomic operations
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, deletedIndexKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to purge projects: %w", err)
	}
	return int64(len(ids)), nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
