// Package infrastructure assembles the dependencies CLI commands require:
// logging, the Paperless client, and export storage.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/paperless"
	"github.com/JaimeStill/paperless/internal/config"
	"github.com/JaimeStill/paperless/internal/export"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/storage"
)

// Infrastructure holds the systems shared by every command.
type Infrastructure struct {
	Config *config.Config
	Logger *slog.Logger
	Client *paperless.Client
}

// New creates an Infrastructure from a finalized configuration, logging to w.
func New(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging, w)

	client, err := paperless.New(&cfg.Paperless, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("paperless client init failed: %w", err)
	}

	return &Infrastructure{
		Config: cfg,
		Logger: logger,
		Client: client,
	}, nil
}

// Storage creates and initializes the export storage system.
func (i *Infrastructure) Storage(ctx context.Context) (storage.System, error) {
	store, err := storage.New(&i.Config.Export.Storage, i.Logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("storage start failed: %w", err)
	}
	return store, nil
}

// Exporter creates an Exporter reading from the Paperless client into export storage.
func (i *Infrastructure) Exporter(ctx context.Context, overwrite bool) (*export.Exporter, error) {
	store, err := i.Storage(ctx)
	if err != nil {
		return nil, err
	}
	return export.New(i.Client.Documents, store, i.Config.Export, overwrite, i.Logger), nil
}
