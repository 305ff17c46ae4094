package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lipu/types"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists the reader state between runs.
type SnapshotStore interface {
	Load(ctx context.Context) (*types.Snapshot, error)
	Save(ctx context.Context, snap types.Snapshot) error
}

func encode(snap types.Snapshot) ([]byte, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

func decode(b []byte) (*types.Snapshot, error) {
	var snap types.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
