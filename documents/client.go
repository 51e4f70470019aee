// Package documents reads, updates, downloads, and uploads Paperless documents.
//
// Uploads are asynchronous on the server. Create submits the file, then follows the
// import task until it resolves to a CreationResult. Servers that predate task ids
// resolve immediately to ImportStarted.
package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/paperless/customfields"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
	"github.com/JaimeStill/paperless/tasks"
)

const (
	// Path is the documents collection.
	Path = "api/documents/"
	// CreatePath accepts multipart uploads.
	CreatePath = Path + "post_document/"
)

// Client provides access to documents.
type Client struct {
	documents  *resource.Client[Document, Update]
	transport  *transport.Client
	fields     *customfields.Client
	poller     *tasks.Poller
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates a Client. fields supplies the descriptor cache for typed custom field access
// and poller follows upload tasks.
func New(
	t *transport.Client,
	fields *customfields.Client,
	poller *tasks.Poller,
	cfg pagination.Config,
	logger *slog.Logger,
) *Client {
	return &Client{
		documents:  resource.New[Document, Update](t, Path, cfg),
		transport:  t,
		fields:     fields,
		poller:     poller,
		pagination: cfg,
		logger:     logging.OrDiscard(logger).With("client", "documents"),
	}
}

// CustomFields returns the custom field client backing typed access.
func (c *Client) CustomFields() *customfields.Client {
	return c.fields
}

// List walks every document.
func (c *Client) List(ctx context.Context) iter.Seq2[Document, error] {
	return c.documents.List(ctx)
}

// ListPageSize walks every document requesting pages of size items.
func (c *Client) ListPageSize(ctx context.Context, size int) iter.Seq2[Document, error] {
	return c.documents.ListPageSize(ctx, size)
}

// Filter walks every document matching filter.
func (c *Client) Filter(ctx context.Context, filter Filter) iter.Seq2[Document, error] {
	return c.documents.ListQuery(ctx, filter.Values())
}

// Page retrieves a single page of documents.
func (c *Client) Page(ctx context.Context, page, size int) (*pagination.Page[Document], error) {
	return c.documents.Page(ctx, page, size)
}

// Get retrieves document id, or nil when it does not exist.
func (c *Client) Get(ctx context.Context, id int) (*Document, error) {
	return c.documents.Get(ctx, id)
}

// Update applies a partial update and returns the updated document.
func (c *Client) Update(ctx context.Context, id int, update Update) (*Document, error) {
	return c.documents.Update(ctx, id, update)
}

// Delete removes document id.
func (c *Client) Delete(ctx context.Context, id int) error {
	if err := c.documents.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("document deleted", "id", id)
	return nil
}

// Metadata retrieves file metadata for document id, or nil when it does not exist.
func (c *Client) Metadata(ctx context.Context, id int) (*Metadata, error) {
	var metadata Metadata
	found, err := c.transport.GetJSONOptional(ctx, c.documents.ItemPath(id, "metadata"), &metadata)
	if err != nil || !found {
		return nil, err
	}
	return &metadata, nil
}

// Download streams the archived version of document id, or the original when none exists.
func (c *Client) Download(ctx context.Context, id int) (*Content, error) {
	return c.content(ctx, c.documents.ItemPath(id, "download"), false)
}

// DownloadOriginal streams the file as it was uploaded.
func (c *Client) DownloadOriginal(ctx context.Context, id int) (*Content, error) {
	return c.content(ctx, c.documents.ItemPath(id, "download"), true)
}

// Preview streams the archived version for inline display.
func (c *Client) Preview(ctx context.Context, id int) (*Content, error) {
	return c.content(ctx, c.documents.ItemPath(id, "preview"), false)
}

// OriginalPreview streams the original file for inline display.
func (c *Client) OriginalPreview(ctx context.Context, id int) (*Content, error) {
	return c.content(ctx, c.documents.ItemPath(id, "preview"), true)
}

// Thumbnail streams the thumbnail image.
func (c *Client) Thumbnail(ctx context.Context, id int) (*Content, error) {
	return c.content(ctx, c.documents.ItemPath(id, "thumb"), false)
}

// Create uploads a document and waits for the server to import it.
// A transport error means the upload was not accepted; an ImportFailed result means
// the server accepted it but could not import it. Cancellation returns the context error.
func (c *Client) Create(ctx context.Context, creation Creation) (CreationResult, error) {
	body, contentType, err := creation.encode()
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	resp, err := c.transport.Do(ctx, &transport.Request{
		Method:      http.MethodPost,
		Path:        CreatePath,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	serverVersion := resp.Header.Get(VersionHeader)
	if IsLegacy(serverVersion) {
		c.logger.Info("import started", "file", creation.FileName, "server_version", serverVersion)
		return ImportStarted{}, nil
	}

	var taskID uuid.UUID
	if err := json.NewDecoder(resp.Body).Decode(&taskID); err != nil {
		return nil, fmt.Errorf("decode task id: %w", err)
	}

	c.logger.Debug("awaiting import", "file", creation.FileName, "task_id", taskID)

	task, err := c.poller.Await(ctx, taskID)
	if err != nil {
		return nil, err
	}

	result, err := Resolve(task)
	if err != nil {
		return nil, err
	}

	switch r := result.(type) {
	case Created:
		c.logger.Info("document created", "file", creation.FileName, "id", r.ID)
	case ImportFailed:
		c.logger.Warn("import failed", "file", creation.FileName, "task_id", taskID, "message", r.Message)
	}
	return result, nil
}

func (c *Client) content(ctx context.Context, path string, original bool) (*Content, error) {
	if original {
		path += "?" + url.Values{"original": {"true"}}.Encode()
	}
	resp, err := c.transport.Stream(ctx, path)
	if err != nil {
		return nil, err
	}
	return newContent(resp), nil
}
