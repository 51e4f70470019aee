// Package pagination walks the page envelopes returned by Paperless list endpoints.
package pagination

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"
)

// Page is the envelope of every list response.
type Page[T any] struct {
	Count    *int    `json:"count,omitempty"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	All      []int   `json:"all,omitempty"`
	Results  []T     `json:"results"`
}

// Fetcher retrieves the page at uri. A nil page with a nil error means the page is absent.
type Fetcher[T any] func(ctx context.Context, uri string) (*Page[T], error)

// Walk returns a lazy sequence over every result reachable from uri by following next links.
// An absent page or absent results end the sequence without error. A fetch error or a
// cancelled context is yielded once, after which the sequence ends; items yielded before it
// remain valid. Stopping the range loop stops further fetches.
func Walk[T any](ctx context.Context, fetch Fetcher[T], uri string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		next := uri

		for next != "" {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			page, err := fetch(ctx, next)
			if err != nil {
				yield(zero, err)
				return
			}
			if page == nil || page.Results == nil {
				return
			}

			for _, item := range page.Results {
				if !yield(item, nil) {
					return
				}
			}

			if page.Next == nil {
				return
			}

			next, err = Follow(next, *page.Next)
			if err != nil {
				yield(zero, err)
				return
			}
		}
	}
}

// Follow resolves a next link against the URI of the page that reported it.
// Absolute and rooted links are returned unchanged. Query-only and path-relative links
// are resolved per RFC 3986; when current is itself relative to the client base, the
// result stays relative to that base.
func Follow(current, link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse next link %q: %w", link, err)
	}
	if ref.IsAbs() || ref.Host != "" || strings.HasPrefix(ref.Path, "/") {
		return link, nil
	}

	cur, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse page uri %q: %w", current, err)
	}
	if cur.IsAbs() || strings.HasPrefix(cur.Path, "/") {
		return cur.ResolveReference(ref).String(), nil
	}

	anchored := &url.URL{Path: "/" + cur.Path, RawQuery: cur.RawQuery}
	resolved := anchored.ResolveReference(ref)
	resolved.Path = strings.TrimPrefix(resolved.Path, "/")
	resolved.RawPath = ""
	return resolved.String(), nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Request selects a single page.
type Request struct {
	Page     int
	PageSize int
}

// Normalize adjusts the request to valid pagination values based on the config.
func (r *Request) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Apply writes the page and page_size parameters into values. Zero members are skipped.
func (r Request) Apply(values url.Values) {
	if r.Page > 0 {
		values.Set("page", strconv.Itoa(r.Page))
	}
	if r.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(r.PageSize))
	}
}
