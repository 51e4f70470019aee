package documents

import (
	"io"
	"mime"
	"net/http"

	"github.com/JaimeStill/paperless/pkg/codec"
)

// Document is a stored document without custom field values.
type Document struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Content             string          `json:"content"`
	Tags                []int           `json:"tags"`
	Correspondent       *int            `json:"correspondent"`
	DocumentType        *int            `json:"document_type"`
	StoragePath         *int            `json:"storage_path"`
	OriginalFileName    string          `json:"original_file_name"`
	ArchivedFileName    *string         `json:"archived_file_name"`
	ArchiveSerialNumber *int            `json:"archive_serial_number"`
	Created             codec.Timestamp `json:"created"`
	Modified            codec.Timestamp `json:"modified"`
	Added               codec.Timestamp `json:"added"`
	Owner               *int            `json:"owner"`
}

// FieldsDocument is a Document whose custom field values are mapped onto F.
type FieldsDocument[F any] struct {
	Document
	CustomFields F `json:"custom_fields"`
}

// Update is a partial document update. Nil members are not sent.
type Update struct {
	Created             *codec.Timestamp `json:"created,omitempty"`
	Title               *string          `json:"title,omitempty"`
	Correspondent       *int             `json:"correspondent,omitempty"`
	DocumentType        *int             `json:"document_type,omitempty"`
	StoragePath         *int             `json:"storage_path,omitempty"`
	Tags                []int            `json:"tags,omitempty"`
	ArchiveSerialNumber *int             `json:"archive_serial_number,omitempty"`
}

// FieldsUpdate is a partial update that also replaces custom field values when CustomFields is set.
type FieldsUpdate[F any] struct {
	Update
	CustomFields *F
}

// Metadata describes the stored files of a document. The server computes it on request,
// so it is not part of list responses.
type Metadata struct {
	MediaFilename        string             `json:"media_filename"`
	OriginalChecksum     string             `json:"original_checksum"`
	OriginalSize         int64              `json:"original_size"`
	OriginalMimeType     string             `json:"original_mime_type"`
	OriginalFilename     string             `json:"original_filename"`
	OriginalMetadata     []MetadataProperty `json:"original_metadata"`
	Language             string             `json:"lang"`
	HasArchiveVersion    bool               `json:"has_archive_version"`
	ArchiveMediaFilename *string            `json:"archive_media_filename,omitempty"`
	ArchiveChecksum      *string            `json:"archive_checksum,omitempty"`
	ArchiveSize          *int64             `json:"archive_size,omitempty"`
	ArchiveMetadata      []MetadataProperty `json:"archive_metadata,omitempty"`
}

// MetadataProperty is one embedded metadata entry of a file.
type MetadataProperty struct {
	Namespace *string `json:"namespace,omitempty"`
	Prefix    *string `json:"prefix,omitempty"`
	Key       string  `json:"key"`
	Value     string  `json:"value"`
}

// Content is a downloaded file. The caller must close it.
type Content struct {
	Body        io.ReadCloser
	Disposition string
	Filename    string
	MediaType   string
	Size        int64
}

// Close releases the underlying response body.
func (c *Content) Close() error {
	return c.Body.Close()
}

func newContent(resp *http.Response) *Content {
	content := &Content{
		Body:        resp.Body,
		Disposition: resp.Header.Get("Content-Disposition"),
		MediaType:   resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}

	if mt, _, err := mime.ParseMediaType(content.MediaType); err == nil {
		content.MediaType = mt
	}
	if _, params, err := mime.ParseMediaType(content.Disposition); err == nil {
		content.Filename = params["filename"]
	}

	return content
}
