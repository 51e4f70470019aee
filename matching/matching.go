// Package matching defines the automatic-assignment algorithms shared by correspondents,
// tags, document types, and storage paths.
package matching

import (
	"encoding/json"
	"fmt"
)

// Algorithm selects how a resource's match text is applied to incoming documents.
// It is serialized by its numeric value.
type Algorithm int

const (
	None              Algorithm = 0
	AnyWord           Algorithm = 1
	AllWords          Algorithm = 2
	ExactMatch        Algorithm = 3
	RegularExpression Algorithm = 4
	FuzzyWord         Algorithm = 5
	Automatic         Algorithm = 6
)

var names = map[Algorithm]string{
	None:              "None",
	AnyWord:           "Any word",
	AllWords:          "All words",
	ExactMatch:        "Exact match",
	RegularExpression: "Regular expression",
	FuzzyWord:         "Fuzzy Word",
	Automatic:         "Automatic",
}

// Algorithms lists every known algorithm in numeric order.
func Algorithms() []Algorithm {
	return []Algorithm{None, AnyWord, AllWords, ExactMatch, RegularExpression, FuzzyWord, Automatic}
}

// Name returns the display name of the algorithm.
func (a Algorithm) Name() string {
	if n, ok := names[a]; ok {
		return n
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func (a Algorithm) String() string {
	return a.Name()
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	_, ok := names[a]
	return ok
}

// Parse returns the algorithm with the given display name.
func Parse(name string) (Algorithm, error) {
	for a, n := range names {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown matching algorithm %q", name)
}

func (a Algorithm) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown matching algorithm %d", int(a))
	}
	return json.Marshal(int(a))
}

func (a *Algorithm) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode matching algorithm: %w", err)
	}
	alg := Algorithm(v)
	if !alg.Valid() {
		return fmt.Errorf("unknown matching algorithm %d", v)
	}
	*a = alg
	return nil
}
