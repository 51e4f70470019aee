// Package codec provides JSON converter types for the value shapes the Paperless API emits
// that encoding/json cannot decode on its own.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire layout of date-only values.
const DateLayout = time.DateOnly

// ErrInvalidValue indicates a payload that cannot be converted to the target type.
var ErrInvalidValue = errors.New("codec: invalid value")

// Timestamp is a point in time that accepts both RFC 3339 and date-only values.
// It always encodes as RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: timestamp %s", ErrInvalidValue, data)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses an RFC 3339 timestamp, falling back to a date-only value at UTC midnight.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrInvalidValue, s)
}

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date portion of t.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date %s", ErrInvalidValue, data)
	}

	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

// LenientInt is an integer that may arrive as a JSON number or a numeric string.
type LenientInt int

func (n LenientInt) Int() int {
	return int(n)
}

func (n LenientInt) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(n), 10), nil
}

func (n *LenientInt) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	text := data
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: integer %s", ErrInvalidValue, data)
		}
		text = []byte(s)
	}

	v, err := strconv.Atoi(string(bytes.TrimSpace(text)))
	if err != nil {
		return fmt.Errorf("%w: integer %s", ErrInvalidValue, data)
	}
	*n = LenientInt(v)
	return nil
}

// Compact returns data with insignificant whitespace removed.
func Compact(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsNull reports whether data is empty or the JSON literal null.
func IsNull(data []byte) bool {
	return isNull(data)
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
