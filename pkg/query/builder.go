// Package query builds the filter query strings understood by Paperless list endpoints.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the format used for instant comparisons.
const TimeLayout = "2006-01-02T15:04:05Z"

// Builder accumulates filter parameters using a fluent API. Nil or empty values are ignored,
// so optional filter members can be passed straight through.
type Builder struct {
	values url.Values
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: url.Values{}}
}

// WhereEquals sets key to value. Nil values and nil pointers are ignored.
func (b *Builder) WhereEquals(key string, value any) *Builder {
	if s, ok := format(value); ok {
		b.values.Set(key, s)
	}
	return b
}

// WhereContains adds a case-insensitive substring match on field.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	return b.whereText(field+"__icontains", value)
}

// WhereStartsWith adds a case-insensitive prefix match on field.
func (b *Builder) WhereStartsWith(field string, value *string) *Builder {
	return b.whereText(field+"__istartswith", value)
}

// WhereEndsWith adds a case-insensitive suffix match on field.
func (b *Builder) WhereEndsWith(field string, value *string) *Builder {
	return b.whereText(field+"__iendswith", value)
}

// WhereExact adds a case-insensitive equality match on field.
func (b *Builder) WhereExact(field string, value *string) *Builder {
	return b.whereText(field+"__iexact", value)
}

// WhereIn sets key to a comma-separated id list. Empty slices are ignored.
func (b *Builder) WhereIn(key string, ids []int) *Builder {
	if len(ids) == 0 {
		return b
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	b.values.Set(key, strings.Join(parts, ","))
	return b
}

// WhereNull adds an isnull check on field.
func (b *Builder) WhereNull(field string, value *bool) *Builder {
	return b.WhereEquals(field+"__isnull", value)
}

// WhereAfter adds a strict lower bound on a time field.
func (b *Builder) WhereAfter(field string, value *time.Time) *Builder {
	return b.WhereEquals(field+"__gt", value)
}

// WhereBefore adds a strict upper bound on a time field.
func (b *Builder) WhereBefore(field string, value *time.Time) *Builder {
	return b.WhereEquals(field+"__lt", value)
}

// OrderBy sets the ordering field. An empty field leaves the server default.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field == "" {
		return b
	}
	if descending {
		field = "-" + field
	}
	b.values.Set("ordering", field)
	return b
}

// Values returns a copy of the accumulated parameters.
func (b *Builder) Values() url.Values {
	out := make(url.Values, len(b.values))
	for k, v := range b.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Encode returns the parameters in URL-encoded form, sorted by key.
func (b *Builder) Encode() string {
	return b.values.Encode()
}

// Apply appends the encoded parameters to path.
func (b *Builder) Apply(path string) string {
	return Append(path, b.values)
}

// Append adds values to path, respecting an existing query string.
func Append(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + encoded
	}
	return path + "?" + encoded
}

func (b *Builder) whereText(key string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.values.Set(key, *value)
	return b
}

func format(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case bool:
		return strconv.FormatBool(v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	case time.Time:
		return v.UTC().Format(TimeLayout), true
	case *time.Time:
		if v == nil {
			return "", false
		}
		return v.UTC().Format(TimeLayout), true
	default:
		return "", false
	}
}
