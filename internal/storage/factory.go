package storage

import (
	"context"
	"strings"

	"github.com/timmy/solarmatch/internal/config"
)

// NewArchiveStorage builds the S3-compatible store configured for the ranking
// archive and makes sure its bucket exists.
// Parameters:
//   - ctx: context for the bucket check.
//   - cfg: archive configuration including endpoint, credentials and bucket.
//
// Returns:
//   - *S3Storage: initialized storage client.
//   - error: non-nil if the client cannot be created or the bucket is unusable.
func NewArchiveStorage(ctx context.Context, cfg config.ArchiveConfig) (*S3Storage, error) {
	s3cfg := &S3Config{
		Type:      StorageType(strings.ToLower(cfg.Type)),
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
	}
	if s3cfg.Type == "" {
		s3cfg.Type = detectStorageType(cfg.Endpoint)
	}

	store, err := NewS3Storage(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// detectStorageType guesses the provider from the endpoint host.
func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
