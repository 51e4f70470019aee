// Package paperless is a typed client for the Paperless-ngx REST API.
//
// A Client composes one resource client per API collection over a shared transport.
// Documents and custom fields share a single descriptor cache, so custom field values
// decoded through WithFields always resolve against the fields the client has seen.
package paperless

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/paperless/correspondents"
	"github.com/JaimeStill/paperless/customfields"
	"github.com/JaimeStill/paperless/documents"
	"github.com/JaimeStill/paperless/documenttypes"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/transport"
	"github.com/JaimeStill/paperless/storagepaths"
	"github.com/JaimeStill/paperless/tags"
	"github.com/JaimeStill/paperless/tasks"
)

// Client groups the resource clients of one Paperless server.
type Client struct {
	Documents      *documents.Client
	CustomFields   *customfields.Client
	Tasks          *tasks.Client
	Correspondents *correspondents.Client
	Tags           *tags.Client
	DocumentTypes  *documenttypes.Client
	StoragePaths   *storagepaths.Client

	transport *transport.Client
	poller    *tasks.Poller
}

// New creates a Client from a finalized Config.
// A nil httpClient uses a client with the configured timeout; a nil logger discards output.
func New(cfg *Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	logger = logging.OrDiscard(logger)

	t, err := transport.New(&cfg.Server, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("transport init failed: %w", err)
	}

	fields := customfields.New(t, customfields.NewCache(), cfg.Pagination, logger)
	taskClient := tasks.New(t, logger)
	poller := tasks.NewPoller(taskClient, cfg.TaskPollDelayDuration(), logger)

	return &Client{
		Documents:      documents.New(t, fields, poller, cfg.Pagination, logger),
		CustomFields:   fields,
		Tasks:          taskClient,
		Correspondents: correspondents.New(t, cfg.Pagination),
		Tags:           tags.New(t, cfg.Pagination),
		DocumentTypes:  documenttypes.New(t, cfg.Pagination),
		StoragePaths:   storagepaths.New(t, cfg.Pagination),
		transport:      t,
		poller:         poller,
	}, nil
}

// BaseURL returns the server address requests are resolved against.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// Poller returns the poller that follows document upload tasks.
func (c *Client) Poller() *tasks.Poller {
	return c.poller
}

// WithFields returns a documents client that maps custom fields onto F.
func WithFields[F any](c *Client) *documents.Typed[F] {
	return documents.WithFields[F](c.Documents)
}
