// Package transport performs authenticated requests against a Paperless server.
// It resolves references against the configured base address, attaches the token and
// API version headers, applies an optional client-side rate limit, and converts
// non-2xx responses into *Error values. Requests are never retried.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/JaimeStill/paperless/pkg/logging"
)

// AcceptHeader requests version 2 of the Paperless JSON API.
const AcceptHeader = "application/json; version=2"

// maxErrorBody bounds how much of a failed response is kept on *Error.
const maxErrorBody = 64 << 10

// Request describes a single call. Path may be relative to the base address
// or an absolute URL, in which case only its path and query are used.
type Request struct {
	Method      string
	Path        string
	Body        io.Reader
	ContentType string
}

// Client is safe for concurrent use.
type Client struct {
	base      *url.URL
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New creates a Client from a finalized configuration.
// A nil httpClient gets a client with the configured timeout; a nil logger discards output.
func New(cfg *Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.TimeoutDuration()}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		base:      base,
		token:     cfg.Token,
		userAgent: userAgent,
		http:      httpClient,
		limiter:   limiter,
		logger:    logging.OrDiscard(logger).With("client", "transport"),
	}, nil
}

// BaseURL returns the base address every reference is resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Resolve maps ref onto the base address. Relative references are resolved against it.
// Absolute references are re-targeted: their scheme and host are replaced by the base
// address and only their path and query are kept, so links reported with an internal
// host behind a proxy still reach the configured server.
func (c *Client) Resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}

	if u.IsAbs() || u.Host != "" {
		resolved := *c.base
		resolved.Path = u.Path
		resolved.RawPath = u.RawPath
		resolved.RawQuery = u.RawQuery
		resolved.Fragment = ""
		return resolved.String(), nil
	}

	if strings.HasPrefix(u.Path, "/") {
		return c.base.ResolveReference(u).String(), nil
	}

	return c.base.JoinPath(u.Path).String() + queryOf(u), nil
}

// Do sends req and returns the response for any 2xx status. The caller closes the body.
// Other statuses are returned as *Error with the body already consumed.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	target, err := c.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Token "+c.token)
	httpReq.Header.Set("Accept", AcceptHeader)
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, httpReq.URL.Path, err)
	}

	c.logger.Debug("request completed",
		"method", req.Method,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	return resp, nil
}

// GetJSON decodes the response of a GET on path into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

// GetJSONOptional behaves like GetJSON but reports false instead of an error on 404.
func (c *Client) GetJSONOptional(ctx context.Context, path string, out any) (bool, error) {
	err := c.GetJSON(ctx, path, out)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PostJSON sends in as a JSON body and decodes the response into out when out is non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

// PatchJSON sends a partial update and decodes the response into out when out is non-nil.
func (c *Client) PatchJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, in, out)
}

// Delete issues a DELETE on path and fails on any non-2xx status.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Stream issues a GET on path and hands the open response to the caller.
func (c *Client) Stream(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.Do(ctx, &Request{
		Method:      method,
		Path:        path,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	}
	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func queryOf(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}
