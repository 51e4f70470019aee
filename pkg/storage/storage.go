// Package storage stores exported document files as keyed blobs.
// A System is backed by the local filesystem or by a MinIO/S3 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/paperless/pkg/logging"
)

var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates an empty key or a key escaping the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrTooLarge indicates data exceeding the configured maximum object size.
	ErrTooLarge = errors.New("storage: object too large")
)

// System stores, retrieves, and deletes blobs by slash-separated key.
type System interface {
	// Init prepares the backing location: the base directory or the bucket.
	Init(ctx context.Context) error

	// Store saves data at key, overwriting existing contents.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)
}

// New creates the System selected by cfg.Backend. cfg must be finalized.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logging.OrDiscard(logger).With("system", "storage", "backend", cfg.Backend)

	switch cfg.Backend {
	case BackendFilesystem:
		return newFilesystem(cfg, logger)
	case BackendMinIO:
		return newMinIO(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// cleanKey normalizes key to a relative slash path, rejecting traversal.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, `\`) {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(strings.ReplaceAll(key, `\`, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

func checkSize(data []byte, max int64) error {
	if max > 0 && int64(len(data)) > max {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(data), max)
	}
	return nil
}
