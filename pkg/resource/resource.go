// Package resource provides CRUD access to a single Paperless API collection.
package resource

import (
	"context"
	"iter"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/query"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Client reads and writes items of type T, created from payloads of type C,
// under one collection path such as "api/tags/".
type Client[T any, C any] struct {
	transport  *transport.Client
	path       string
	pagination pagination.Config
}

// New creates a Client rooted at path. A trailing slash is added when missing.
func New[T any, C any](t *transport.Client, path string, cfg pagination.Config) *Client[T, C] {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &Client[T, C]{
		transport:  t,
		path:       path,
		pagination: cfg,
	}
}

// Path returns the collection path.
func (c *Client[T, C]) Path() string {
	return c.path
}

// ItemPath returns the path of item id, with optional trailing segments.
func (c *Client[T, C]) ItemPath(id int, segments ...string) string {
	p := c.path + strconv.Itoa(id) + "/"
	for _, s := range segments {
		p += strings.Trim(s, "/") + "/"
	}
	return p
}

// Transport returns the underlying transport client.
func (c *Client[T, C]) Transport() *transport.Client {
	return c.transport
}

// Fetch retrieves one page at uri. It satisfies pagination.Fetcher.
func (c *Client[T, C]) Fetch(ctx context.Context, uri string) (*pagination.Page[T], error) {
	var page *pagination.Page[T]
	if err := c.transport.GetJSON(ctx, uri, &page); err != nil {
		return nil, err
	}
	return page, nil
}

// List walks every item using the server's default page size.
func (c *Client[T, C]) List(ctx context.Context) iter.Seq2[T, error] {
	return pagination.Walk(ctx, c.Fetch, c.path)
}

// ListPageSize walks every item requesting pages of size items.
// Non-positive sizes use the configured default; sizes above the maximum are clamped.
func (c *Client[T, C]) ListPageSize(ctx context.Context, size int) iter.Seq2[T, error] {
	return c.ListQuery(ctx, c.pageValues(0, size))
}

// ListQuery walks every item matching the given filter parameters.
func (c *Client[T, C]) ListQuery(ctx context.Context, values url.Values) iter.Seq2[T, error] {
	return pagination.Walk(ctx, c.Fetch, query.Append(c.path, values))
}

// Page retrieves a single page. A missing page is returned as nil without error.
func (c *Client[T, C]) Page(ctx context.Context, page, size int) (*pagination.Page[T], error) {
	var result *pagination.Page[T]
	found, err := c.transport.GetJSONOptional(ctx, query.Append(c.path, c.pageValues(page, size)), &result)
	if err != nil || !found {
		return nil, err
	}
	return result, nil
}

// Get retrieves item id. A 404 is reported as nil, nil.
func (c *Client[T, C]) Get(ctx context.Context, id int) (*T, error) {
	var item T
	found, err := c.transport.GetJSONOptional(ctx, c.ItemPath(id), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

// Create posts creation and returns the created item.
func (c *Client[T, C]) Create(ctx context.Context, creation C) (*T, error) {
	var item T
	if err := c.transport.PostJSON(ctx, c.path, creation, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update patches item id with the non-empty members of update and returns the result.
func (c *Client[T, C]) Update(ctx context.Context, id int, update any) (*T, error) {
	var item T
	if err := c.transport.PatchJSON(ctx, c.ItemPath(id), update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes item id.
func (c *Client[T, C]) Delete(ctx context.Context, id int) error {
	return c.transport.Delete(ctx, c.ItemPath(id))
}

func (c *Client[T, C]) pageValues(page, size int) url.Values {
	req := pagination.Request{Page: page, PageSize: size}
	req.Normalize(c.pagination)
	if page < 1 {
		req.Page = 0
	}

	values := url.Values{}
	req.Apply(values)
	return values
}
