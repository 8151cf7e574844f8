package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"thinkle/internal/app/db"
)

// PostgresStore is a Store persisted in the client_storage table. Several stores can
// share one pool; each writes under its own namespace.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	ttl       time.Duration
	ownsPool  bool
}

// NewPostgresStore returns a store writing under namespace with values living for ttl.
// Close releases the pool only when ownsPool is set.
func NewPostgresStore(pool *pgxpool.Pool, namespace string, ttl time.Duration, ownsPool bool) *PostgresStore {
	return &PostgresStore{pool: pool, namespace: namespace, ttl: ttl, ownsPool: ownsPool}
}

func (p *PostgresStore) Get(ctx context.Context, scope, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM client_storage
		 WHERE namespace = $1 AND scope = $2 AND key = $3 AND expires_at > now()`,
		p.namespace, scope, key,
	).Scan(&value)
	if db.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", scope, key, err)
	}
	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, scope, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO client_storage (namespace, scope, key, value, expires_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (namespace, scope, key)
		 DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`,
		p.namespace, scope, key, value, time.Now().Add(p.ttl),
	)
	if err != nil {
		return fmt.Errorf("store %s/%s: %w", scope, key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, scope string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := p.pool.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND scope = $2 AND key = ANY($3)`,
		p.namespace, scope, keys,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", scope, err)
	}
	return nil
}

func (p *PostgresStore) Purge(ctx context.Context) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND expires_at <= now()`,
		p.namespace,
	)
	if err != nil {
		if db.IsUndefinedTable(err) {
			return 0, fmt.Errorf("client_storage is missing, migrations were not applied: %w", err)
		}
		return 0, fmt.Errorf("purge %s: %w", p.namespace, err)
	}
	return int(tag.RowsAffected()), nil
}

func (p *PostgresStore) Close() error {
	if p.ownsPool {
		p.pool.Close()
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
