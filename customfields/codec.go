package customfields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/JaimeStill/paperless/pkg/codec"
	"github.com/JaimeStill/paperless/pkg/decode"
)

// Codec maps between the server's list of field values and a caller-defined struct F
// whose JSON member names equal the server-side field names.
type Codec[F any] struct {
	cache *Cache

	// OmitNull skips members that encode as null instead of sending them as null values.
	OmitNull bool
}

// NewCodec creates a Codec reading descriptors from cache, with OmitNull enabled.
func NewCodec[F any](cache *Cache) *Codec[F] {
	return &Codec[F]{cache: cache, OmitNull: true}
}

type value struct {
	Value json.RawMessage `json:"value"`
	Field int             `json:"field"`
}

// Decode materializes F from data. The list form is resolved through the cache;
// the object form, as echoed by some endpoints, is decoded directly.
// Null and an empty list both produce the zero F.
func (c *Codec[F]) Decode(data []byte) (F, error) {
	var result F

	trimmed := bytes.TrimSpace(data)
	if codec.IsNull(trimmed) {
		return result, nil
	}

	switch trimmed[0] {
	case '[':
		var values []value
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return result, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		if len(values) == 0 {
			return result, nil
		}

		named := make(map[string]json.RawMessage, len(values))
		for _, v := range values {
			field, ok := c.cache.Get(v.Field)
			if !ok {
				return result, fmt.Errorf("%w: id %d", ErrFieldNotCached, v.Field)
			}
			raw := v.Value
			if len(raw) == 0 {
				raw = json.RawMessage("null")
			}
			named[field.Name] = raw
		}

		decoded, err := decode.FromMap[F](named)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrValueType, err)
		}
		return decoded, nil
	case '{':
		if err := json.Unmarshal(trimmed, &result); err != nil {
			return result, fmt.Errorf("%w: %w", ErrValueType, err)
		}
		return result, nil
	default:
		return result, fmt.Errorf("%w: %.32s", ErrMalformedPayload, trimmed)
	}
}

// Encode converts fields into the server's list form, visiting members in declaration
// order and converting each value according to its descriptor's data type.
func (c *Codec[F]) Encode(fields F) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode custom fields: %w", err)
	}
	if codec.IsNull(data) {
		return []byte("null"), nil
	}

	members, err := decode.Members(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	values := make([]value, 0, len(members))
	for _, m := range members {
		if c.OmitNull && codec.IsNull(m.Value) {
			continue
		}

		field, ok := c.cache.ByName(m.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, m.Name)
		}

		converted, err := convert(field.DataType, m.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", m.Name, err)
		}
		values = append(values, value{Value: converted, Field: field.ID})
	}

	return json.Marshal(values)
}

func convert(dt DataType, raw json.RawMessage) (json.RawMessage, error) {
	if codec.IsNull(raw) {
		return json.RawMessage("null"), nil
	}

	var target any
	switch dt {
	case String, URL, Date:
		var s string
		target = &s
	case Boolean:
		var b bool
		target = &b
	case Integer, Select:
		var n int64
		target = &n
	case Float:
		var f float64
		target = &f
	case Monetary:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("%w: %s expects a number: %s", ErrValueType, dt, raw)
		}
		// Rounds half away from zero on the binary value, so 1.005 (stored as 1.00499...) gives 1.
		return json.Marshal(math.Round(f*100) / 100)
	case DocumentLink:
		var ids []int
		target = &ids
	default:
		return nil, fmt.Errorf("%w: %w", ErrValueType, dt.Validate())
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: %s value %s", ErrValueType, dt, raw)
	}
	return json.Marshal(target)
}
