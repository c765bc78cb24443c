// Package snapshot provides the blob stores that carry the serialized
// governance state across restarts.
package snapshot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"treasury/internal/domain"
	"treasury/internal/infra"
)

// Open builds the store selected by cfg.SnapshotBackend. The returned close
// function releases any connection the store holds.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.SnapshotStore, func(), error) {
	noop := func() {}
	log := logger.With().Str("snapshot_backend", cfg.SnapshotBackend).Logger()

	switch cfg.SnapshotBackend {
	case infra.SnapshotBackendMemory:
		log.Warn().Msg("snapshots are kept in memory and lost on exit")
		return NewMemoryStore(), noop, nil

	case infra.SnapshotBackendFile:
		store, err := NewFileStore(cfg.SnapshotPath, cfg.SnapshotKey)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("path", store.Path()).Msg("snapshot store ready")
		return store, noop, nil

	case infra.SnapshotBackendPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		store := NewPostgresStore(infra.NewSQLRunner(pool, log), cfg.SnapshotKey)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Msg("snapshot store ready")
		return store, pool.Close, nil

	case infra.SnapshotBackendRedis:
		client, err := DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("key", cfg.SnapshotKey).Msg("snapshot store ready")
		return NewRedisStore(client, cfg.SnapshotKey), func() { _ = client.Close() }, nil

	case infra.SnapshotBackendS3:
		s3cfg := S3StoreConfig{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
			Key:      cfg.SnapshotKey,
		}
		client, err := NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("snapshot store ready")
		return NewS3Store(client, s3cfg), noop, nil
	}

	return nil, noop, fmt.Errorf("snapshot: unknown backend %q", cfg.SnapshotBackend)
}
