package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/formforge/form-service/internal/storage"
)

// MaxUploadSize is the upload ceiling for images (5 MB).
const MaxUploadSize = 5 * 1024 * 1024

type uploadService struct {
	store  storage.BlobStore
	logger *slog.Logger
}

func NewUploadService(store storage.BlobStore, logger *slog.Logger) UploadService {
	return &uploadService{
		store:  store,
		logger: logger,
	}
}

// UploadImage checks the upload preconditions (image mime type, 5 MB
// ceiling) before the blob store is touched, then stores the bytes and
// returns the public URL. Only the URL ever reaches the form store.
func (s *uploadService) UploadImage(ctx context.Context, data []byte, mimeType, filename string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	if len(data) > MaxUploadSize {
		return nil, ErrUploadTooLarge
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUploadNotImage
	}

	url, publicID, err := s.store.Put(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info("Image uploaded", "public_id", publicID, "size", len(data), "mime_type", mimeType)
	return &UploadResult{URL: url, PublicID: publicID}, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, publicID string) error {
	if err := s.store.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	s.logger.Info("Image deleted", "public_id", publicID)
	return nil
}
