package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/logx"
)

// LocalityRepo reads the coverage reference table from Postgres.
type LocalityRepo struct{ db *pgxpool.Pool }

// NewLocalityRepo creates a new LocalityRepo.
func NewLocalityRepo(db *pgxpool.Pool) *LocalityRepo { return &LocalityRepo{db: db} }

// ListAll returns every covered (region, district) pair in insertion order.
func (r *LocalityRepo) ListAll(ctx context.Context) (domain.LocalityTable, error) {
	rows, err := r.db.Query(ctx, `SELECT region, district FROM localities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list localities: %w", err)
	}
	defer rows.Close()

	out := make(domain.LocalityTable, 0)
	for rows.Next() {
		var l domain.Locality
		if err := rows.Scan(&l.Region, &l.District); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole table in one transaction. cmd/seed runs this
// when the operator edits the locality file.
func (r *LocalityRepo) ReplaceAll(ctx context.Context, table domain.LocalityTable) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `TRUNCATE localities RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate localities: %w", err)
	}
	for _, l := range table {
		if _, err := tx.Exec(ctx,
			`INSERT INTO localities (region, district) VALUES ($1, $2)`,
			l.Region, l.District); err != nil {
			return fmt.Errorf("insert locality %s/%s: %w", l.Region, l.District, err)
		}
	}
	return tx.Commit(ctx)
}

const localityCacheKey = "localities:v1"

// localitySource is what the cache reads through to.
type localitySource interface {
	ListAll(ctx context.Context) (domain.LocalityTable, error)
}

// CachedLocalityStore is a read-through Redis cache in front of the locality
// table. The table changes only on operator edits, so a short TTL is enough
// to keep every instance within one refresh of the source.
type CachedLocalityStore struct {
	source localitySource
	rdb    *redis.Client
	ttl    time.Duration
	logger logx.Logger
}

// NewCachedLocalityStore creates a new CachedLocalityStore.
func NewCachedLocalityStore(source localitySource, rdb *redis.Client, ttl time.Duration, logger logx.Logger) *CachedLocalityStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedLocalityStore{source: source, rdb: rdb, ttl: ttl, logger: logger}
}

// ListAll returns the cached table, falling back to the source on a miss.
// Cache failures degrade to the source rather than failing the request.
func (s *CachedLocalityStore) ListAll(ctx context.Context) (domain.LocalityTable, error) {
	raw, err := s.rdb.Get(ctx, localityCacheKey).Bytes()
	switch {
	case err == nil:
		var table domain.LocalityTable
		if err := json.Unmarshal(raw, &table); err == nil {
			return table, nil
		}
		s.logger.Warn("locality cache entry corrupt, refetching")
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("locality cache read failed", logx.Err(err))
	}

	table, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(table); err == nil {
		if err := s.rdb.Set(ctx, localityCacheKey, raw, s.ttl).Err(); err != nil {
			s.logger.Warn("locality cache write failed", logx.Err(err))
		}
	}
	return table, nil
}

// Invalidate drops the cached table so the next read hits the source.
func (s *CachedLocalityStore) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, localityCacheKey).Err()
}
