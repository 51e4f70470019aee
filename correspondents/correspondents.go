// Package correspondents manages the senders and recipients documents are assigned to.
package correspondents

import (
	"github.com/JaimeStill/paperless/matching"
	"github.com/JaimeStill/paperless/pkg/codec"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the correspondents collection.
const Path = "api/correspondents/"

// Correspondent is a sender or recipient of documents.
type Correspondent struct {
	ID                 int                `json:"id"`
	Slug               string             `json:"slug"`
	Name               string             `json:"name"`
	Match              string             `json:"match"`
	MatchingAlgorithm  matching.Algorithm `json:"matching_algorithm"`
	IsInsensitive      bool               `json:"is_insensitive"`
	DocumentCount      int                `json:"document_count"`
	LastCorrespondence *codec.Timestamp   `json:"last_correspondence,omitempty"`
	Owner              *int               `json:"owner,omitempty"`
}

// Creation is the payload for creating a correspondent.
type Creation struct {
	Name              string              `json:"name"`
	Slug              *string             `json:"slug,omitempty"`
	Match             *string             `json:"match,omitempty"`
	MatchingAlgorithm *matching.Algorithm `json:"matching_algorithm,omitempty"`
	IsInsensitive     *bool               `json:"is_insensitive,omitempty"`
	Owner             *int                `json:"owner,omitempty"`
}

// Client provides list, get, create, update, and delete access to correspondents.
type Client struct {
	*resource.Client[Correspondent, Creation]
}

// New creates a Client.
func New(t *transport.Client, cfg pagination.Config) *Client {
	return &Client{resource.New[Correspondent, Creation](t, Path, cfg)}
}
