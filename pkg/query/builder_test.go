package query_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/paperless/pkg/query"
)

func ptr[T any](v T) *T {
	return &v
}

func TestBuilder_IgnoresNil(t *testing.T) {
	var s *string
	var n *int
	var flag *bool
	var ts *time.Time

	b := query.NewBuilder().
		WhereEquals("id", n).
		WhereEquals("title", nil).
		WhereContains("title", s).
		WhereContains("content", ptr("")).
		WhereNull("correspondent", flag).
		WhereAfter("created", ts).
		WhereIn("tags__id__in", nil).
		OrderBy("", false)

	if got := b.Encode(); got != "" {
		t.Errorf("Encode() = %q, want empty", got)
	}
}

func TestBuilder_Conditions(t *testing.T) {
	tests := []struct {
		name  string
		build func(*query.Builder)
		want  string
	}{
		{
			name:  "contains",
			build: func(b *query.Builder) { b.WhereContains("title", ptr("Invoice")) },
			want:  "title__icontains=Invoice",
		},
		{
			name:  "starts and ends",
			build: func(b *query.Builder) { b.WhereStartsWith("title", ptr("a")).WhereEndsWith("title", ptr("z")) },
			want:  "title__iendswith=z&title__istartswith=a",
		},
		{
			name:  "exact",
			build: func(b *query.Builder) { b.WhereExact("correspondent__name", ptr("ACME Corp")) },
			want:  "correspondent__name__iexact=ACME+Corp",
		},
		{
			name:  "in",
			build: func(b *query.Builder) { b.WhereIn("id__in", []int{3, 1, 2}) },
			want:  "id__in=3%2C1%2C2",
		},
		{
			name:  "equals int",
			build: func(b *query.Builder) { b.WhereEquals("archive_serial_number__gt", ptr(100)) },
			want:  "archive_serial_number__gt=100",
		},
		{
			name:  "null",
			build: func(b *query.Builder) { b.WhereNull("storage_path", ptr(true)) },
			want:  "storage_path__isnull=true",
		},
		{
			name: "after",
			build: func(b *query.Builder) {
				b.WhereAfter("created", ptr(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
			},
			want: "created__gt=2024-01-02T03%3A04%3A05Z",
		},
		{
			name:  "ordering descending",
			build: func(b *query.Builder) { b.OrderBy("created", true) },
			want:  "ordering=-created",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder()
			tt.build(b)

			if got := b.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Apply(t *testing.T) {
	b := query.NewBuilder().WhereEquals("page_size", 5)

	if got := b.Apply("api/documents/"); got != "api/documents/?page_size=5" {
		t.Errorf("Apply() = %q", got)
	}
	if got := b.Apply("api/documents/?page=2"); got != "api/documents/?page=2&page_size=5" {
		t.Errorf("Apply() = %q", got)
	}
	if got := query.NewBuilder().Apply("api/tags/"); got != "api/tags/" {
		t.Errorf("Apply() on empty builder = %q", got)
	}
}

func TestBuilder_ValuesIsCopy(t *testing.T) {
	b := query.NewBuilder().WhereEquals("id", 1)

	values := b.Values()
	values.Set("id", "2")

	if got := b.Encode(); got != "id=1" {
		t.Errorf("Encode() = %q, want id=1", got)
	}
}
