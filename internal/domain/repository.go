package domain

import "context"

// SnapshotStore persists the serialized governance state across restarts.
type SnapshotStore interface {
	// Save replaces the stored snapshot with data.
	Save(ctx context.Context, data []byte) error
	// Load returns the stored snapshot or ErrSnapshotNotFound.
	Load(ctx context.Context) ([]byte, error)
}
