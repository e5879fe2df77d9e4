package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore is the external collaborator for uploaded images. The rest
// of the service only ever handles the resulting URL; raw bytes never
// reach the form store.
type BlobStore interface {
	// Put stores the blob and returns its public URL together with the
	// store-assigned identifier used for later deletion.
	Put(ctx context.Context, name string, data []byte) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// LocalDiskStore keeps blobs on the local filesystem and serves them
// from a static route. Stands in for a hosted blob store in
// development.
type LocalDiskStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

func NewLocalDiskStore(dir, baseURL string, logger *slog.Logger) (*LocalDiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalDiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

func (s *LocalDiskStore) Put(ctx context.Context, name string, data []byte) (string, string, error) {
	publicID := uuid.NewString() + filepath.Ext(name)
	path := filepath.Join(s.dir, publicID)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Info("Stored blob", "public_id", publicID, "size", len(data))
	return s.baseURL + "/uploads/" + publicID, publicID, nil
}

func (s *LocalDiskStore) Delete(ctx context.Context, publicID string) error {
	// Reject path traversal in caller-supplied identifiers.
	if publicID != filepath.Base(publicID) {
		return fmt.Errorf("invalid public id: %s", publicID)
	}
	path := filepath.Join(s.dir, publicID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	s.logger.Info("Deleted blob", "public_id", publicID)
	return nil
}
