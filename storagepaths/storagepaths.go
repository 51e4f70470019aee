// Package storagepaths manages the path templates that decide where document files are stored.
package storagepaths

import (
	"github.com/JaimeStill/paperless/matching"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the storage paths collection.
const Path = "api/storage_paths/"

// StoragePath is a file naming template applied to matching documents.
type StoragePath struct {
	ID                int                `json:"id"`
	Slug              string             `json:"slug"`
	Name              string             `json:"name"`
	Path              string             `json:"path"`
	Match             string             `json:"match"`
	MatchingAlgorithm matching.Algorithm `json:"matching_algorithm"`
	IsInsensitive     bool               `json:"is_insensitive"`
	DocumentCount     int                `json:"document_count"`
	Owner             *int               `json:"owner,omitempty"`
}

// Creation is the payload for creating a storage path.
type Creation struct {
	Name              string              `json:"name"`
	Path              string              `json:"path"`
	Slug              *string             `json:"slug,omitempty"`
	Match             *string             `json:"match,omitempty"`
	MatchingAlgorithm *matching.Algorithm `json:"matching_algorithm,omitempty"`
	IsInsensitive     *bool               `json:"is_insensitive,omitempty"`
	Owner             *int                `json:"owner,omitempty"`
}

// Client provides list, get, create, update, and delete access to storage paths.
type Client struct {
	*resource.Client[StoragePath, Creation]
}

// New creates a Client.
func New(t *transport.Client, cfg pagination.Config) *Client {
	return &Client{resource.New[StoragePath, Creation](t, Path, cfg)}
}
