// Package decode converts between generic JSON shapes and typed values.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject indicates a payload expected to be a JSON object was some other kind.
var ErrNotObject = errors.New("decode: payload is not a JSON object")

// FromMap materializes T from a name→value mapping by round-tripping it through JSON.
// Keys without a matching member of T are ignored; members without a key keep their zero value.
func FromMap[T any, V any](data map[string]V) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// Member is one name/value pair of a JSON object.
type Member struct {
	Name  string
	Value json.RawMessage
}

// Members returns the members of a JSON object in document order.
func Members(data []byte) ([]Member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read object start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read member name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read member %s: %w", name, err)
		}
		members = append(members, Member{Name: name, Value: value})
	}

	return members, nil
}
