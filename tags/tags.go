// Package tags manages document tags.
package tags

import (
	"github.com/JaimeStill/paperless/matching"
	"github.com/JaimeStill/paperless/pkg/pagination"
	"github.com/JaimeStill/paperless/pkg/resource"
	"github.com/JaimeStill/paperless/pkg/transport"
)

// Path is the tags collection.
const Path = "api/tags/"

// Tag labels documents. Inbox tags are applied to every newly consumed document.
type Tag struct {
	ID                int                `json:"id"`
	Slug              string             `json:"slug"`
	Name              string             `json:"name"`
	Color             string             `json:"color,omitempty"`
	TextColor         string             `json:"text_color,omitempty"`
	Match             string             `json:"match"`
	MatchingAlgorithm matching.Algorithm `json:"matching_algorithm"`
	IsInsensitive     bool               `json:"is_insensitive"`
	IsInboxTag        bool               `json:"is_inbox_tag"`
	DocumentCount     int                `json:"document_count"`
	Owner             *int               `json:"owner,omitempty"`
}

// Creation is the payload for creating a tag.
type Creation struct {
	Name              string              `json:"name"`
	Color             *string             `json:"color,omitempty"`
	Match             *string             `json:"match,omitempty"`
	MatchingAlgorithm *matching.Algorithm `json:"matching_algorithm,omitempty"`
	IsInsensitive     *bool               `json:"is_insensitive,omitempty"`
	IsInboxTag        *bool               `json:"is_inbox_tag,omitempty"`
	Owner             *int                `json:"owner,omitempty"`
}

// Client provides list, get, create, update, and delete access to tags.
type Client struct {
	*resource.Client[Tag, Creation]
}

// New creates a Client.
func New(t *transport.Client, cfg pagination.Config) *Client {
	return &Client{resource.New[Tag, Creation](t, Path, cfg)}
}
