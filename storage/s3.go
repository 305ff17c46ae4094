package storage

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"lipu/types"
)

// ObjectStore is the slice of the S3 wrapper the snapshot archive needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

const (
	latestObject   = "latest.json"
	archiveDir     = "archive/"
	archiveLayout  = "20060102T150405.000Z"
	defaultArchive = 10
)

// S3Store writes the latest snapshot plus a bounded, timestamped archive of
// earlier ones under prefix.
type S3Store struct {
	objects ObjectStore
	prefix  string
	keep    int
}

// NewS3Store keeps at most keep archived snapshots; keep <= 0 uses 10.
func NewS3Store(objects ObjectStore, prefix string, keep int) *S3Store {
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	if keep <= 0 {
		keep = defaultArchive
	}
	return &S3Store{objects: objects, prefix: prefix, keep: keep}
}

func (s *S3Store) Load(ctx context.Context) (*types.Snapshot, error) {
	key := s.prefix + latestObject
	ok, err := s.objects.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNoSnapshot
	}

	b, err := s.objects.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	return decode(b)
}

func (s *S3Store) Save(ctx context.Context, snap types.Snapshot) error {
	b, err := encode(snap)
	if err != nil {
		return err
	}

	archiveKey := s.prefix + archiveDir + snap.SavedAt.UTC().Format(archiveLayout) + ".json"
	if err := s.objects.Put(ctx, archiveKey, b, "application/json"); err != nil {
		return fmt.Errorf("failed to upload %s: %w", archiveKey, err)
	}
	if err := s.objects.Put(ctx, s.prefix+latestObject, b, "application/json"); err != nil {
		return fmt.Errorf("failed to upload latest snapshot: %w", err)
	}

	s.prune(ctx)
	return nil
}

// Archives lists archived snapshot keys, oldest first.
func (s *S3Store) Archives(ctx context.Context) ([]string, error) {
	keys, err := s.objects.List(ctx, s.prefix+archiveDir)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// prune drops the oldest archives beyond the retention limit. Failures only
// leave extra objects behind, so they are logged rather than returned.
func (s *S3Store) prune(ctx context.Context) {
	keys, err := s.Archives(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to list snapshot archive: %v", err)
		return
	}
	for len(keys) > s.keep {
		if err := s.objects.Delete(ctx, keys[0]); err != nil {
			log.Printf("⚠️  Failed to delete archived snapshot %s: %v", keys[0], err)
		}
		keys = keys[1:]
	}
}
