package main

import (
	"context"
	"iter"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/correspondents"
	"github.com/JaimeStill/paperless/documenttypes"
	"github.com/JaimeStill/paperless/storagepaths"
	"github.com/JaimeStill/paperless/tags"
)

// newListCmd builds "<use> list" for a resource listed by list and rendered by row.
func newListCmd[T any](
	a *app,
	use, short string,
	header []string,
	list func(*app, context.Context) iter.Seq2[T, error],
	row func(T) []string,
) *cobra.Command {
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + use,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := collect(list(a, cmd.Context()), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, len(items))
			for i, item := range items {
				rows[i] = row(item)
			}
			return a.render(items, header, rows)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of items (0 for all)")

	cmd := &cobra.Command{Use: use, Short: short}
	cmd.AddCommand(listCmd)
	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	return newListCmd(a, "tags", "Manage tags",
		[]string{"ID", "NAME", "COLOR", "INBOX", "MATCHING", "DOCUMENTS"},
		func(a *app, ctx context.Context) iter.Seq2[tags.Tag, error] {
			return a.infra.Client.Tags.List(ctx)
		},
		func(t tags.Tag) []string {
			return []string{
				strconv.Itoa(t.ID), t.Name, t.Color, strconv.FormatBool(t.IsInboxTag),
				t.MatchingAlgorithm.String(), strconv.Itoa(t.DocumentCount),
			}
		},
	)
}

func newCorrespondentsCmd(a *app) *cobra.Command {
	return newListCmd(a, "correspondents", "Manage correspondents",
		[]string{"ID", "NAME", "MATCHING", "DOCUMENTS", "LAST CORRESPONDENCE"},
		func(a *app, ctx context.Context) iter.Seq2[correspondents.Correspondent, error] {
			return a.infra.Client.Correspondents.List(ctx)
		},
		func(c correspondents.Correspondent) []string {
			last := "-"
			if c.LastCorrespondence != nil {
				last = c.LastCorrespondence.Format("2006-01-02")
			}
			return []string{
				strconv.Itoa(c.ID), c.Name, c.MatchingAlgorithm.String(),
				strconv.Itoa(c.DocumentCount), last,
			}
		},
	)
}

func newDocumentTypesCmd(a *app) *cobra.Command {
	return newListCmd(a, "document-types", "Manage document types",
		[]string{"ID", "NAME", "MATCHING", "MATCH", "DOCUMENTS"},
		func(a *app, ctx context.Context) iter.Seq2[documenttypes.DocumentType, error] {
			return a.infra.Client.DocumentTypes.List(ctx)
		},
		func(d documenttypes.DocumentType) []string {
			return []string{
				strconv.Itoa(d.ID), d.Name, d.MatchingAlgorithm.String(), d.Match,
				strconv.Itoa(d.DocumentCount),
			}
		},
	)
}

func newStoragePathsCmd(a *app) *cobra.Command {
	return newListCmd(a, "storage-paths", "Manage storage paths",
		[]string{"ID", "NAME", "PATH", "MATCHING", "DOCUMENTS"},
		func(a *app, ctx context.Context) iter.Seq2[storagepaths.StoragePath, error] {
			return a.infra.Client.StoragePaths.List(ctx)
		},
		func(s storagepaths.StoragePath) []string {
			return []string{
				strconv.Itoa(s.ID), s.Name, s.Path, s.MatchingAlgorithm.String(),
				strconv.Itoa(s.DocumentCount),
			}
		},
	)
}
