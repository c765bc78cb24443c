package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"treasury/internal/domain"
	"treasury/internal/infra"
	"treasury/internal/sqlinline"
)

// PostgresStore keeps the snapshot as one row of governance_snapshots.
type PostgresStore struct {
	sql infra.SQLExecutor
	key string
}

func NewPostgresStore(sql infra.SQLExecutor, key string) *PostgresStore {
	return &PostgresStore{sql: sql, key: key}
}

// EnsureSchema creates the snapshot table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QEnsureSnapshotTable); err != nil {
		return fmt.Errorf("snapshot: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QUpsertSnapshot, s.key, data); err != nil {
		return fmt.Errorf("snapshot: upsert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.sql.QueryRow(ctx, sqlinline.QSelectSnapshot, s.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: select: %w", err)
	}
	return payload, nil
}
