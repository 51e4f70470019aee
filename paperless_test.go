package paperless_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/paperless"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/transport"
)

type invoice struct {
	Pages int `json:"Pages"`
}

func newClient(t *testing.T, handler http.Handler) *paperless.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := paperless.Config{
		Server:        transport.Config{BaseURL: srv.URL + "/paperless", Token: "secret"},
		TaskPollDelay: "10ms",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	client, err := paperless.New(&cfg, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_ComposesClients(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]string{}

	mux := http.NewServeMux()
	record := func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = r.Header.Get("Authorization")
		mu.Unlock()
		w.Write([]byte(`{"count":0,"next":null,"results":[]}`))
	}
	for _, path := range []string{
		"/paperless/api/documents/",
		"/paperless/api/custom_fields/",
		"/paperless/api/correspondents/",
		"/paperless/api/tags/",
		"/paperless/api/document_types/",
		"/paperless/api/storage_paths/",
	} {
		mux.HandleFunc("GET "+path, record)
	}

	client := newClient(t, mux)
	ctx := context.Background()

	lists := map[string]func() error{
		"documents": func() error { _, err := pagination.Collect(client.Documents.List(ctx)); return err },
		"fields":    func() error { _, err := pagination.Collect(client.CustomFields.List(ctx)); return err },
		"corresp":   func() error { _, err := pagination.Collect(client.Correspondents.List(ctx)); return err },
		"tags":      func() error { _, err := pagination.Collect(client.Tags.List(ctx)); return err },
		"types":     func() error { _, err := pagination.Collect(client.DocumentTypes.List(ctx)); return err },
		"paths":     func() error { _, err := pagination.Collect(client.StoragePaths.List(ctx)); return err },
	}
	for name, list := range lists {
		if err := list(); err != nil {
			t.Errorf("%s list error = %v", name, err)
		}
	}

	if len(seen) != len(lists) {
		t.Errorf("requested %d paths, want %d: %v", len(seen), len(lists), seen)
	}
	for path, auth := range seen {
		if auth != "Token secret" {
			t.Errorf("%s Authorization = %q", path, auth)
		}
	}
}

func TestNew_SharesFieldCache(t *testing.T) {
	client := newClient(t, http.NotFoundHandler())

	if client.Documents.CustomFields() != client.CustomFields {
		t.Error("documents and custom fields use different field clients")
	}
	if got := client.Poller().Delay(); got != 10*time.Millisecond {
		t.Errorf("Poller().Delay() = %v, want 10ms", got)
	}
}

func TestWithFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /paperless/api/custom_fields/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"next":null,"results":[{"id":4,"name":"Pages","data_type":"integer"}]}`))
	})
	mux.HandleFunc("GET /paperless/api/documents/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"Invoice","content":"","tags":[],"created":"2024-01-02T00:00:00Z","modified":"2024-01-02T00:00:00Z","added":"2024-01-02T00:00:00Z","custom_fields":[{"field":4,"value":12}]}`))
	})
	client := newClient(t, mux)

	doc, err := paperless.WithFields[invoice](client).Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc == nil {
		t.Fatal("Get() = nil")
	}
	if doc.CustomFields.Pages != 12 {
		t.Errorf("Pages = %v, want 12", doc.CustomFields.Pages)
	}
	if _, ok := client.CustomFields.Cache().Get(4); !ok {
		t.Error("field 4 not cached on the shared client")
	}
}
