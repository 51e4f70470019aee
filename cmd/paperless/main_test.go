package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/paperless/documents"
)

const taskID = "8f3c1a9e-2b4d-4c6e-9a1f-0d2e3f4a5b6c"

type server struct {
	mu      sync.Mutex
	queries map[string]string
	fields  []string
}

func (s *server) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.queries["documents"] = r.URL.RawQuery
		s.mu.Unlock()
		w.Write([]byte(`{"count":2,"next":null,"results":[` +
			`{"id":1,"title":"Invoice March","content":"","tags":[1,2],"correspondent":3,"original_file_name":"march.pdf","created":"2024-03-01","modified":"2024-03-01T00:00:00Z","added":"2024-03-01T00:00:00Z"},` +
			`{"id":2,"title":"Invoice April","content":"","tags":[],"original_file_name":"april.pdf","created":"2024-04-01","modified":"2024-04-01T00:00:00Z","added":"2024-04-01T00:00:00Z"}]}`))
	})
	mux.HandleFunc("GET /api/documents/{id}/download/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="doc-`+r.PathValue("id")+`.pdf"`)
		if r.URL.Query().Get("original") == "true" {
			w.Write([]byte("original"))
			return
		}
		w.Write([]byte("archived"))
	})
	mux.HandleFunc("POST /api/documents/post_document/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.fields = append(s.fields, r.FormValue("title"))
		s.mu.Unlock()
		w.Header().Set("X-Version", "2.3.0")
		w.Write([]byte(`"` + taskID + `"`))
	})
	mux.HandleFunc("GET /api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"task_id":"` + taskID + `","task_file_name":"notes.txt","date_created":"2024-05-01T10:00:00Z","status":"SUCCESS","result":"Success. New document id 42 created","acknowledged":false,"related_document":"42"}]`))
	})
	mux.HandleFunc("GET /api/tags/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"next":null,"results":[{"id":1,"slug":"inbox","name":"Inbox","color":"#a6cee3","matching_algorithm":0,"is_inbox_tag":true,"document_count":3}]}`))
	})
	mux.HandleFunc("POST /api/custom_fields/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		var in map[string]any
		json.Unmarshal(body, &in)
		in["id"] = 9
		json.NewEncoder(w).Encode(in)
	})
	return mux
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	s := &server{queries: map[string]string{}}
	return runWith(t, s, args...)
}

func runWith(t *testing.T, s *server, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(s.handler(t))
	t.Cleanup(srv.Close)

	t.Setenv("PAPERLESS_ENV", "")
	t.Setenv("PAPERLESS_BASE_URL", srv.URL)
	t.Setenv("PAPERLESS_TOKEN", "token")
	t.Setenv("PAPERLESS_TASK_POLL_DELAY", "1ms")

	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTagsList(t *testing.T) {
	out, err := run(t, "tags", "list")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"ID", "NAME", "Inbox", "#a6cee3", "None"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDocumentsList(t *testing.T) {
	s := &server{queries: map[string]string{}}
	out, err := runWith(t, s, "documents", "list", "--title", "invoice", "--tag", "1", "--tag", "2", "-o", "json", "-n", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var docs []documents.Document
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatalf("output is not a document list: %v\n%s", err, out)
	}
	if len(docs) != 1 || docs[0].ID != 1 {
		t.Errorf("docs = %+v", docs)
	}

	query := s.queries["documents"]
	for _, want := range []string{"title__icontains=invoice", "tags__id__all=1%2C2"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestDocumentsUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("meeting notes"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &server{queries: map[string]string{}}
	out, err := runWith(t, s, "documents", "upload", path, "--title", "Notes")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "created document 42" {
		t.Errorf("output = %q", out)
	}
	if len(s.fields) != 1 || s.fields[0] != "Notes" {
		t.Errorf("uploaded titles = %v", s.fields)
	}
}

func TestDocumentsUpload_RejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	os.WriteFile(path, nil, 0644)

	if _, err := run(t, "documents", "upload", path); err == nil {
		t.Error("Execute() error = nil, want empty file error")
	}
}

func TestDocumentsDownload(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"archived", []string{"documents", "download", "7", "-f", filepath.Join(dir, "a.pdf")}, "archived"},
		{"original", []string{"documents", "download", "7", "--original", "-f", filepath.Join(dir, "o.pdf")}, "original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			data, err := os.ReadFile(tt.args[len(tt.args)-1])
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("file = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestFieldsCreate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{name: "select", args: []string{"--type", "select", "--option", "Low", "--option", "High"}, want: "Low, High"},
		{name: "monetary", args: []string{"--type", "monetary", "--currency", "EUR"}, want: "EUR"},
		{name: "select without options", args: []string{"--type", "select"}, wantErr: true},
		{name: "options on string", args: []string{"--option", "x"}, wantErr: true},
		{name: "unknown type", args: []string{"--type", "longtext"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"fields", "create", "Priority"}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestTasksGet(t *testing.T) {
	out, err := run(t, "tasks", "get", taskID, "--wait")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "SUCCESS") || !strings.Contains(out, "42") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "tasks", "get", "not-a-uuid"); err == nil {
		t.Error("Execute() error = nil for invalid task id")
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	t.Setenv("PAPERLESS_EXPORT_PATH", dir)

	out, err := run(t, "export")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "exported 2 documents") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "documents", "2", "doc-2.pdf")); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	if _, err := run(t, "tags", "list", "-o", "yaml"); err == nil {
		t.Error("Execute() error = nil, want invalid format error")
	}
}
