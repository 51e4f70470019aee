// Package customfields manages custom field descriptors and maps document custom-field
// values onto caller-defined structs.
package customfields

import (
	"context"
	"iter"
	"log/slog"

	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the custom fields collection.
const Path = "api/custom_fields/"

// Client lists and creates custom fields, recording every descriptor it sees in its cache.
type Client struct {
	fields *resource.Client[Field, Creation]
	cache  *Cache
	logger *slog.Logger
}

// New creates a Client. A nil cache gets a fresh one.
func New(t *transport.Client, cache *Cache, cfg pagination.Config, logger *slog.Logger) *Client {
	if cache == nil {
		cache = NewCache()
	}
	return &Client{
		fields: resource.New[Field, Creation](t, Path, cfg),
		cache:  cache,
		logger: logging.OrDiscard(logger).With("client", "custom_fields"),
	}
}

// Cache returns the descriptor cache shared with codecs built from this client.
func (c *Client) Cache() *Cache {
	return c.cache
}

// List walks every custom field.
func (c *Client) List(ctx context.Context) iter.Seq2[Field, error] {
	return c.observe(c.fields.List(ctx))
}

// ListPageSize walks every custom field requesting pages of size items.
func (c *Client) ListPageSize(ctx context.Context, size int) iter.Seq2[Field, error] {
	return c.observe(c.fields.ListPageSize(ctx, size))
}

// Get retrieves field id, or nil when it does not exist.
func (c *Client) Get(ctx context.Context, id int) (*Field, error) {
	field, err := c.fields.Get(ctx, id)
	if err != nil || field == nil {
		return nil, err
	}
	c.cache.Upsert(*field)
	return field, nil
}

// Create creates a custom field.
func (c *Client) Create(ctx context.Context, creation Creation) (*Field, error) {
	if err := creation.DataType.Validate(); err != nil {
		return nil, err
	}

	field, err := c.fields.Create(ctx, creation)
	if err != nil {
		return nil, err
	}
	c.cache.Upsert(*field)

	c.logger.Info("custom field created", "id", field.ID, "name", field.Name, "data_type", field.DataType)
	return field, nil
}

// Delete removes field id. The cached descriptor is kept until overwritten.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.fields.Delete(ctx, id)
}

// Load drains the field list into the cache.
func (c *Client) Load(ctx context.Context) error {
	count := 0
	for _, err := range c.List(ctx) {
		if err != nil {
			return err
		}
		count++
	}
	c.logger.Debug("custom fields loaded", "count", count)
	return nil
}

// EnsureLoaded loads the field list when the cache is empty.
func (c *Client) EnsureLoaded(ctx context.Context) error {
	if c.cache.Len() > 0 {
		return nil
	}
	return c.Load(ctx)
}

func (c *Client) observe(seq iter.Seq2[Field, error]) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		for field, err := range seq {
			if err == nil {
				c.cache.Upsert(field)
			}
			if !yield(field, err) {
				return
			}
		}
	}
}
