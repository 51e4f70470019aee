// Package tasks reads server-side tasks and waits for them to finish.
package tasks

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the tasks collection. It is not paginated.
const Path = "api/tasks/"

// Client reads tasks.
type Client struct {
	transport *transport.Client
	logger    *slog.Logger
}

// New creates a Client.
func New(t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		transport: t,
		logger:    logging.OrDiscard(logger).With("client", "tasks"),
	}
}

// List returns every task the server reports.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.transport.GetJSON(ctx, Path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns the task with the given id, or nil when the server does not know it.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	var tasks []Task
	path := Path + "?" + url.Values{"task_id": {id.String()}}.Encode()

	found, err := c.transport.GetJSONOptional(ctx, path, &tasks)
	if err != nil || !found || len(tasks) == 0 {
		return nil, err
	}
	return &tasks[0], nil
}
