// Package documenttypes manages document types such as invoice or receipt.
package documenttypes

import (
	"github.com/JaimeStill/paperless/matching"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the document types collection.
const Path = "api/document_types/"

// DocumentType classifies documents.
type DocumentType struct {
	ID                int                `json:"id"`
	Slug              string             `json:"slug"`
	Name              string             `json:"name"`
	Match             string             `json:"match"`
	MatchingAlgorithm matching.Algorithm `json:"matching_algorithm"`
	IsInsensitive     bool               `json:"is_insensitive"`
	DocumentCount     int                `json:"document_count"`
	Owner             *int               `json:"owner,omitempty"`
}

// Creation is the payload for creating a document type.
type Creation struct {
	Name              string              `json:"name"`
	Slug              *string             `json:"slug,omitempty"`
	Match             *string             `json:"match,omitempty"`
	MatchingAlgorithm *matching.Algorithm `json:"matching_algorithm,omitempty"`
	IsInsensitive     *bool               `json:"is_insensitive,omitempty"`
	Owner             *int                `json:"owner,omitempty"`
}

// Client provides list, get, create, update, and delete access to document types.
type Client struct {
	*resource.Client[DocumentType, Creation]
}

// New creates a Client.
func New(t *transport.Client, cfg pagination.Config) *Client {
	return &Client{resource.New[DocumentType, Creation](t, Path, cfg)}
}
