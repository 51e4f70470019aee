package pagination_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/JaimeStill/paperless/pkg/pagination"
)

// pages serves total items split into pages of size, linked by next URIs "p1", "p2", ...
func pages(total, size int) (pagination.Fetcher[int], *[]string) {
	var requested []string
	fetch := func(ctx context.Context, uri string) (*pagination.Page[int], error) {
		requested = append(requested, uri)

		var n int
		fmt.Sscanf(uri, "p%d", &n)

		start := n * size
		end := min(start+size, total)

		page := &pagination.Page[int]{Count: &total, Results: []int{}}
		for i := start; i < end; i++ {
			page.Results = append(page.Results, i)
		}
		if end < total {
			next := fmt.Sprintf("p%d", n+1)
			page.Next = &next
		}
		return page, nil
	}
	return fetch, &requested
}

func TestWalk_PageSizeDoesNotChangeResult(t *testing.T) {
	const total = 23

	for _, size := range []int{1, 2, 5, 10, 23, 50} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			fetch, _ := pages(total, size)

			items, err := pagination.Collect(pagination.Walk(context.Background(), fetch, "p0"))
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}

			if len(items) != total {
				t.Fatalf("len(items) = %d, want %d", len(items), total)
			}
			for i, item := range items {
				if item != i {
					t.Errorf("items[%d] = %d, want %d", i, item, i)
				}
			}
		})
	}
}

func TestWalk_AbsentResults(t *testing.T) {
	tests := []struct {
		name string
		page *pagination.Page[int]
	}{
		{"nil page", nil},
		{"nil results", &pagination.Page[int]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetch := func(ctx context.Context, uri string) (*pagination.Page[int], error) {
				return tt.page, nil
			}

			count := 0
			for _, err := range pagination.Walk(context.Background(), fetch, "start") {
				if err != nil {
					t.Fatalf("Walk() error = %v", err)
				}
				count++
			}
			if count != 0 {
				t.Errorf("count = %d, want 0", count)
			}
		})
	}
}

func TestWalk_ErrorAfterPartialResults(t *testing.T) {
	failure := errors.New("server unavailable")
	next := "second"

	fetch := func(ctx context.Context, uri string) (*pagination.Page[string], error) {
		if uri == "first" {
			return &pagination.Page[string]{Results: []string{"a", "b"}, Next: &next}, nil
		}
		return nil, failure
	}

	var items []string
	var errs []error
	for item, err := range pagination.Walk(context.Background(), fetch, "first") {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("items = %v, want [a b]", items)
	}
	if len(errs) != 1 || !errors.Is(errs[0], failure) {
		t.Errorf("errs = %v, want exactly [%v]", errs, failure)
	}
}

func TestWalk_BreakStopsFetching(t *testing.T) {
	fetch, requested := pages(100, 10)

	count := 0
	for _, err := range pagination.Walk(context.Background(), fetch, "p0") {
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		count++
		if count == 15 {
			break
		}
	}

	if len(*requested) != 2 {
		t.Errorf("fetches = %d, want 2", len(*requested))
	}
}

func TestWalk_CancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetch, requested := pages(30, 10)

	var items int
	var gotErr error
	for _, err := range pagination.Walk(ctx, fetch, "p0") {
		if err != nil {
			gotErr = err
			continue
		}
		items++
		if items == 10 {
			cancel()
		}
	}

	if !errors.Is(gotErr, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", gotErr)
	}
	if items != 10 {
		t.Errorf("items = %d, want 10", items)
	}
	if len(*requested) != 1 {
		t.Errorf("fetches = %d, want 1", len(*requested))
	}
}

func TestRequest_Apply(t *testing.T) {
	values := url.Values{}
	pagination.Request{Page: 2, PageSize: 50}.Apply(values)

	if got := values.Encode(); got != "page=2&page_size=50" {
		t.Errorf("Encode() = %q", got)
	}

	empty := url.Values{}
	pagination.Request{}.Apply(empty)
	if len(empty) != 0 {
		t.Errorf("empty request applied %v", empty)
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		name    string
		current string
		link    string
		want    string
	}{
		{"query only from base relative", "api/tags/?page_size=2", "?page=2&page_size=2", "api/tags/?page=2&page_size=2"},
		{"path relative from base relative", "api/tags/?page_size=2", "../tags/?page=2", "api/tags/?page=2"},
		{"sibling", "p0", "p1", "p1"},
		{"query only from absolute", "http://internal:8000/api/tags/?page=2", "?page=3", "http://internal:8000/api/tags/?page=3"},
		{"path relative from absolute", "http://internal:8000/api/tags/", "next/?page=2", "http://internal:8000/api/tags/next/?page=2"},
		{"rooted", "api/tags/", "/api/tags/?page=2", "/api/tags/?page=2"},
		{"absolute", "api/tags/", "http://internal:8000/api/tags/?page=2", "http://internal:8000/api/tags/?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pagination.Follow(tt.current, tt.link)
			if err != nil {
				t.Fatalf("Follow() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Follow(%q, %q) = %q, want %q", tt.current, tt.link, got, tt.want)
			}
		})
	}
}

func TestWalk_ResolvesRelativeNext(t *testing.T) {
	links := map[string]string{
		"api/tags/":        "?page=2",
		"api/tags/?page=2": "?page=3",
	}

	var requested []string
	fetch := func(ctx context.Context, uri string) (*pagination.Page[string], error) {
		requested = append(requested, uri)
		page := &pagination.Page[string]{Results: []string{uri}}
		if link, ok := links[uri]; ok {
			page.Next = &link
		}
		return page, nil
	}

	items, err := pagination.Collect(pagination.Walk(context.Background(), fetch, "api/tags/"))
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"api/tags/", "api/tags/?page=2", "api/tags/?page=3"}
	if len(items) != len(want) {
		t.Fatalf("items = %v, want %v", items, want)
	}
	for i := range want {
		if requested[i] != want[i] {
			t.Errorf("requested[%d] = %q, want %q", i, requested[i], want[i])
		}
	}
}
