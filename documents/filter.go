package documents

import (
	"net/url"
	"time"

	"github.com/JaimeStill/paperless/pkg/codec"
	"github.com/JaimeStill/paperless/pkg/query"
)

// Filter selects documents. Nil and empty members are not sent.
type Filter struct {
	ID  *int
	IDs []int

	TitleContains   *string
	TitleStartsWith *string
	TitleEndsWith   *string
	TitleExact      *string

	ContentContains   *string
	ContentStartsWith *string
	ContentEndsWith   *string
	ContentExact      *string

	// TitleContent matches either the title or the content.
	TitleContent *string

	ArchiveSerialNumber       *int
	ArchiveSerialNumberGt     *int
	ArchiveSerialNumberGte    *int
	ArchiveSerialNumberLt     *int
	ArchiveSerialNumberLte    *int
	ArchiveSerialNumberIsNull *bool

	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	CreatedDateAfter  *time.Time
	CreatedDateBefore *time.Time

	AddedAfter     *time.Time
	AddedBefore    *time.Time
	ModifiedAfter  *time.Time
	ModifiedBefore *time.Time

	OriginalFileNameContains *string
	ChecksumExact            *string

	CorrespondentID          *int
	CorrespondentIDs         []int
	CorrespondentIsNull      *bool
	CorrespondentNameExact   *string
	ExcludedCorrespondentIDs []int

	TagID           *int
	TagIDs          []int
	RequiredTagIDs  []int
	ExcludedTagIDs  []int
	TagNameContains *string
	IsTagged        *bool

	DocumentTypeID          *int
	DocumentTypeIDs         []int
	DocumentTypeIsNull      *bool
	ExcludedDocumentTypeIDs []int

	StoragePathID          *int
	StoragePathIDs         []int
	StoragePathIsNull      *bool
	ExcludedStoragePathIDs []int

	OwnerID          *int
	OwnerIDs         []int
	OwnerIsNull      *bool
	ExcludedOwnerIDs []int

	CustomFieldsContains *string
	CustomFieldIDs       []int
	HasCustomFields      *bool
	CustomFieldQuery     *string

	IsInInbox *bool

	Ordering   string
	Descending bool
}

// Values returns the query parameters the filter translates to.
func (f *Filter) Values() url.Values {
	b := query.NewBuilder().
		WhereEquals("id", f.ID).
		WhereIn("id__in", f.IDs).
		WhereContains("title", f.TitleContains).
		WhereStartsWith("title", f.TitleStartsWith).
		WhereEndsWith("title", f.TitleEndsWith).
		WhereExact("title", f.TitleExact).
		WhereContains("content", f.ContentContains).
		WhereStartsWith("content", f.ContentStartsWith).
		WhereEndsWith("content", f.ContentEndsWith).
		WhereExact("content", f.ContentExact).
		WhereEquals("title_content", f.TitleContent).
		WhereEquals("archive_serial_number", f.ArchiveSerialNumber).
		WhereEquals("archive_serial_number__gt", f.ArchiveSerialNumberGt).
		WhereEquals("archive_serial_number__gte", f.ArchiveSerialNumberGte).
		WhereEquals("archive_serial_number__lt", f.ArchiveSerialNumberLt).
		WhereEquals("archive_serial_number__lte", f.ArchiveSerialNumberLte).
		WhereNull("archive_serial_number", f.ArchiveSerialNumberIsNull).
		WhereAfter("created", f.CreatedAfter).
		WhereBefore("created", f.CreatedBefore).
		WhereEquals("created__date__gt", dateOf(f.CreatedDateAfter)).
		WhereEquals("created__date__lt", dateOf(f.CreatedDateBefore)).
		WhereAfter("added", f.AddedAfter).
		WhereBefore("added", f.AddedBefore).
		WhereAfter("modified", f.ModifiedAfter).
		WhereBefore("modified", f.ModifiedBefore).
		WhereContains("original_filename", f.OriginalFileNameContains).
		WhereExact("checksum", f.ChecksumExact).
		WhereEquals("correspondent__id", f.CorrespondentID).
		WhereIn("correspondent__id__in", f.CorrespondentIDs).
		WhereNull("correspondent", f.CorrespondentIsNull).
		WhereExact("correspondent__name", f.CorrespondentNameExact).
		WhereIn("correspondent__id__none", f.ExcludedCorrespondentIDs).
		WhereEquals("tags__id", f.TagID).
		WhereIn("tags__id__in", f.TagIDs).
		WhereIn("tags__id__all", f.RequiredTagIDs).
		WhereIn("tags__id__none", f.ExcludedTagIDs).
		WhereContains("tags__name", f.TagNameContains).
		WhereEquals("is_tagged", f.IsTagged).
		WhereEquals("document_type__id", f.DocumentTypeID).
		WhereIn("document_type__id__in", f.DocumentTypeIDs).
		WhereNull("document_type", f.DocumentTypeIsNull).
		WhereIn("document_type__id__none", f.ExcludedDocumentTypeIDs).
		WhereEquals("storage_path__id", f.StoragePathID).
		WhereIn("storage_path__id__in", f.StoragePathIDs).
		WhereNull("storage_path", f.StoragePathIsNull).
		WhereIn("storage_path__id__none", f.ExcludedStoragePathIDs).
		WhereEquals("owner__id", f.OwnerID).
		WhereIn("owner__id__in", f.OwnerIDs).
		WhereNull("owner", f.OwnerIsNull).
		WhereIn("owner__id__none", f.ExcludedOwnerIDs).
		WhereContains("custom_fields", f.CustomFieldsContains).
		WhereIn("custom_fields__id__in", f.CustomFieldIDs).
		WhereEquals("has_custom_fields", f.HasCustomFields).
		WhereEquals("custom_field_query", f.CustomFieldQuery).
		WhereEquals("is_in_inbox", f.IsInInbox).
		OrderBy(f.Ordering, f.Descending)

	return b.Values()
}

func dateOf(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := codec.NewDate(*t).String()
	return &s
}
