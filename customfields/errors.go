package customfields

import "errors"

var (
	// ErrFieldNotCached is returned when a payload references a field id missing from the cache.
	ErrFieldNotCached = errors.New("custom field not cached")
	// ErrUnknownField is returned when a typed member has no descriptor with a matching name.
	ErrUnknownField = errors.New("unknown custom field")
	// ErrMalformedPayload is returned when custom fields are neither a list nor an object.
	ErrMalformedPayload = errors.New("malformed custom fields payload")
	// ErrValueType is returned when a value does not fit the declared data type.
	ErrValueType = errors.New("custom field value does not match data type")
)
