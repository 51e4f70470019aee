package resource_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type creation struct {
	Name string `json:"name"`
}

const total = 17

// itemServer paginates total items and reports next links as absolute URLs on an
// unreachable host, the way Paperless does when it sits behind a proxy.
func itemServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	return linkedItemServer(t, func(page, size int) string {
		return fmt.Sprintf("http://internal:8000/api/items/?page=%d&page_size=%d", page, size)
	})
}

// linkedItemServer paginates total items, reporting each next link as produced by link.
func linkedItemServer(t *testing.T, link func(page, size int) string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		if size < 1 {
			size = 25
		}

		start := (page - 1) * size
		if start >= total && page > 1 {
			http.NotFound(w, r)
			return
		}
		end := min(start+size, total)

		resp := map[string]any{"count": total, "next": nil, "previous": nil}
		results := []item{}
		for i := start; i < end; i++ {
			results = append(results, item{ID: i + 1, Name: fmt.Sprintf("item-%d", i+1)})
		}
		resp["results"] = results
		if end < total {
			resp["next"] = link(page+1, size)
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("GET /api/items/{id}/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		if id < 1 || id > total {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(item{ID: id, Name: fmt.Sprintf("item-%d", id)})
	})
	mux.HandleFunc("POST /api/items/", func(w http.ResponseWriter, r *http.Request) {
		var c creation
		json.NewDecoder(r.Body).Decode(&c)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item{ID: 99, Name: c.Name})
	})
	mux.HandleFunc("PATCH /api/items/{id}/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var patch map[string]string
		json.Unmarshal(body, &patch)
		id, _ := strconv.Atoi(r.PathValue("id"))
		json.NewEncoder(w).Encode(item{ID: id, Name: patch["name"]})
	})
	mux.HandleFunc("DELETE /api/items/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "404" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newClient(t *testing.T, baseURL string) *resource.Client[item, creation] {
	t.Helper()

	cfg := &transport.Config{BaseURL: baseURL, Token: "token"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	tc, err := transport.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("transport.New() error = %v", err)
	}

	pc := pagination.Config{}
	if err := pc.Finalize(nil); err != nil {
		t.Fatalf("pagination Finalize() error = %v", err)
	}

	return resource.New[item, creation](tc, "api/items", pc)
}

func TestClient_ListPageSizeAggregate(t *testing.T) {
	srv, _ := itemServer(t)
	client := newClient(t, srv.URL)

	want, err := pagination.Collect(client.List(context.Background()))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(want) != total {
		t.Fatalf("List() returned %d items, want %d", len(want), total)
	}

	for _, size := range []int{1, 3, 5, 16, 17, 100} {
		t.Run(fmt.Sprintf("page size %d", size), func(t *testing.T) {
			got, err := pagination.Collect(client.ListPageSize(context.Background(), size))
			if err != nil {
				t.Fatalf("ListPageSize() error = %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("item[%d] = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestClient_ListFollowsNextByPath(t *testing.T) {
	srv, requests := itemServer(t)
	client := newClient(t, srv.URL)

	items, err := pagination.Collect(client.ListPageSize(context.Background(), 5))
	if err != nil {
		t.Fatalf("ListPageSize() error = %v", err)
	}
	if len(items) != total {
		t.Errorf("len = %d, want %d", len(items), total)
	}
	if n := requests.Load(); n != 4 {
		t.Errorf("requests = %d, want 4", n)
	}
}

func TestClient_ListFollowsRelativeNext(t *testing.T) {
	tests := []struct {
		name string
		link func(page, size int) string
	}{
		{"query only", func(page, size int) string {
			return fmt.Sprintf("?page=%d&page_size=%d", page, size)
		}},
		{"path relative", func(page, size int) string {
			return fmt.Sprintf("../items/?page=%d&page_size=%d", page, size)
		}},
		{"rooted path", func(page, size int) string {
			return fmt.Sprintf("/api/items/?page=%d&page_size=%d", page, size)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := linkedItemServer(t, tt.link)
			client := newClient(t, srv.URL)

			items, err := pagination.Collect(client.ListPageSize(context.Background(), 5))
			if err != nil {
				t.Fatalf("ListPageSize() error = %v", err)
			}
			if len(items) != total {
				t.Fatalf("len = %d, want %d", len(items), total)
			}
			for i, it := range items {
				if it.ID != i+1 {
					t.Errorf("items[%d].ID = %d, want %d", i, it.ID, i+1)
				}
			}
			if n := requests.Load(); n != 4 {
				t.Errorf("requests = %d, want 4", n)
			}
		})
	}
}

func TestClient_Page(t *testing.T) {
	srv, _ := itemServer(t)
	client := newClient(t, srv.URL)

	page, err := client.Page(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page == nil {
		t.Fatal("Page() = nil")
	}
	if len(page.Results) != 5 || page.Results[0].ID != 6 {
		t.Errorf("Results = %+v", page.Results)
	}
	if page.Count == nil || *page.Count != total {
		t.Errorf("Count = %v, want %d", page.Count, total)
	}

	missing, err := client.Page(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if missing != nil {
		t.Errorf("Page() beyond end = %+v, want nil", missing)
	}
}

func TestClient_Get(t *testing.T) {
	srv, _ := itemServer(t)
	client := newClient(t, srv.URL)

	got, err := client.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Name != "item-3" {
		t.Errorf("Get(3) = %+v", got)
	}

	missing, err := client.Get(context.Background(), 500)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if missing != nil {
		t.Errorf("Get(500) = %+v, want nil", missing)
	}
}

func TestClient_CreateUpdateDelete(t *testing.T) {
	srv, _ := itemServer(t)
	client := newClient(t, srv.URL)
	ctx := context.Background()

	created, err := client.Create(ctx, creation{Name: "fresh"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 99 || created.Name != "fresh" {
		t.Errorf("Create() = %+v", created)
	}

	updated, err := client.Update(ctx, 4, map[string]string{"name": "renamed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != 4 || updated.Name != "renamed" {
		t.Errorf("Update() = %+v", updated)
	}

	if err := client.Delete(ctx, 4); err != nil {
		t.Errorf("Delete(4) error = %v", err)
	}
	if err := client.Delete(ctx, 404); !transport.IsNotFound(err) {
		t.Errorf("Delete(404) error = %v, want not found", err)
	}
}

func TestClient_ItemPath(t *testing.T) {
	client := resource.New[item, creation](nil, "api/documents/", pagination.Config{})

	tests := []struct {
		segments []string
		want     string
	}{
		{nil, "api/documents/7/"},
		{[]string{"download"}, "api/documents/7/download/"},
		{[]string{"/thumb/"}, "api/documents/7/thumb/"},
	}

	for _, tt := range tests {
		if got := client.ItemPath(7, tt.segments...); got != tt.want {
			t.Errorf("ItemPath(7, %v) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}
