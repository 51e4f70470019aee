package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/documents"
	"github.com/JaimeStill/paperless/pkg/codec"
)

// filterFlags binds document filter options to a command.
type filterFlags struct {
	title         string
	content       string
	tags          []int
	correspondent int
	documentType  int
	storagePath   int
	createdAfter  string
	createdBefore string
	inbox         bool
	query         string
	ordering      string
	descending    bool
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Title contains text")
	flags.StringVar(&f.content, "content", "", "Content contains text")
	flags.IntSliceVar(&f.tags, "tag", nil, "Require tag id (repeatable)")
	flags.IntVar(&f.correspondent, "correspondent", 0, "Correspondent id")
	flags.IntVar(&f.documentType, "document-type", 0, "Document type id")
	flags.IntVar(&f.storagePath, "storage-path", 0, "Storage path id")
	flags.StringVar(&f.createdAfter, "created-after", "", "Created after date or timestamp")
	flags.StringVar(&f.createdBefore, "created-before", "", "Created before date or timestamp")
	flags.BoolVar(&f.inbox, "inbox", false, "Only documents with an inbox tag")
	flags.StringVar(&f.query, "field-query", "", "Custom field query expression")
	flags.StringVar(&f.ordering, "order-by", "", "Field to order by")
	flags.BoolVar(&f.descending, "desc", false, "Order descending")
}

func (f *filterFlags) filter(cmd *cobra.Command) (documents.Filter, error) {
	var filter documents.Filter
	flags := cmd.Flags()

	if f.title != "" {
		filter.TitleContains = &f.title
	}
	if f.content != "" {
		filter.ContentContains = &f.content
	}
	filter.RequiredTagIDs = f.tags
	if flags.Changed("correspondent") {
		filter.CorrespondentID = &f.correspondent
	}
	if flags.Changed("document-type") {
		filter.DocumentTypeID = &f.documentType
	}
	if flags.Changed("storage-path") {
		filter.StoragePathID = &f.storagePath
	}
	if f.inbox {
		filter.IsInInbox = &f.inbox
	}
	if f.query != "" {
		filter.CustomFieldQuery = &f.query
	}
	filter.Ordering = f.ordering
	filter.Descending = f.descending

	var err error
	if filter.CreatedAfter, err = parseTime("created-after", f.createdAfter); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = parseTime("created-before", f.createdBefore); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseTime(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := codec.ParseTimestamp(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &t, nil
}
