package documents

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/JaimeStill/paperless/customfields"
	"github.com/JaimeStill/paperless/pkg/resource"
)

// Typed reads and updates documents with custom field values mapped onto F.
// F is a struct whose JSON member names equal the server-side field names.
type Typed[F any] struct {
	client    *Client
	documents *resource.Client[wireDocument, Update]
	codec     *customfields.Codec[F]
}

type wireDocument struct {
	Document
	CustomFields json.RawMessage `json:"custom_fields"`
}

type wireUpdate struct {
	Update
	CustomFields json.RawMessage `json:"custom_fields,omitempty"`
}

// WithFields returns a typed view of client. The descriptor cache is loaded on first use
// when it is empty.
func WithFields[F any](client *Client) *Typed[F] {
	return &Typed[F]{
		client:    client,
		documents: resource.New[wireDocument, Update](client.transport, Path, client.pagination),
		codec:     customfields.NewCodec[F](client.fields.Cache()),
	}
}

// Codec returns the custom field codec used by t.
func (t *Typed[F]) Codec() *customfields.Codec[F] {
	return t.codec
}

// List walks every document.
func (t *Typed[F]) List(ctx context.Context) iter.Seq2[FieldsDocument[F], error] {
	return t.typed(ctx, func() iter.Seq2[wireDocument, error] {
		return t.documents.List(ctx)
	})
}

// ListPageSize walks every document requesting pages of size items.
func (t *Typed[F]) ListPageSize(ctx context.Context, size int) iter.Seq2[FieldsDocument[F], error] {
	return t.typed(ctx, func() iter.Seq2[wireDocument, error] {
		return t.documents.ListPageSize(ctx, size)
	})
}

// Filter walks every document matching filter.
func (t *Typed[F]) Filter(ctx context.Context, filter Filter) iter.Seq2[FieldsDocument[F], error] {
	return t.typed(ctx, func() iter.Seq2[wireDocument, error] {
		return t.documents.ListQuery(ctx, filter.Values())
	})
}

// Get retrieves document id, or nil when it does not exist.
func (t *Typed[F]) Get(ctx context.Context, id int) (*FieldsDocument[F], error) {
	if err := t.client.fields.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	wire, err := t.documents.Get(ctx, id)
	if err != nil || wire == nil {
		return nil, err
	}

	doc, err := t.decode(*wire)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update applies a partial update, replacing custom field values when update.CustomFields is set.
func (t *Typed[F]) Update(ctx context.Context, id int, update FieldsUpdate[F]) (*FieldsDocument[F], error) {
	if err := t.client.fields.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	payload := wireUpdate{Update: update.Update}
	if update.CustomFields != nil {
		encoded, err := t.codec.Encode(*update.CustomFields)
		if err != nil {
			return nil, err
		}
		payload.CustomFields = encoded
	}

	wire, err := t.documents.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	doc, err := t.decode(*wire)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (t *Typed[F]) typed(ctx context.Context, source func() iter.Seq2[wireDocument, error]) iter.Seq2[FieldsDocument[F], error] {
	return func(yield func(FieldsDocument[F], error) bool) {
		var zero FieldsDocument[F]

		if err := t.client.fields.EnsureLoaded(ctx); err != nil {
			yield(zero, err)
			return
		}

		for wire, err := range source() {
			if err != nil {
				yield(zero, err)
				return
			}

			doc, err := t.decode(wire)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (t *Typed[F]) decode(wire wireDocument) (FieldsDocument[F], error) {
	fields, err := t.codec.Decode(wire.CustomFields)
	if err != nil {
		return FieldsDocument[F]{}, err
	}
	return FieldsDocument[F]{Document: wire.Document, CustomFields: fields}, nil
}
