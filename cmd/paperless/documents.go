package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/documents"
	"github.com/JaimeStill/paperless/internal/inspect"
)

func newDocumentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "List, upload, download, and delete documents",
	}
	cmd.AddCommand(
		newDocumentsListCmd(a),
		newDocumentsGetCmd(a),
		newDocumentsUploadCmd(a),
		newDocumentsDownloadCmd(a),
		newDocumentsMetadataCmd(a),
		newDocumentsDeleteCmd(a),
	)
	return cmd
}

func documentRows(docs []documents.Document) [][]string {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{
			strconv.Itoa(d.ID),
			d.Title,
			d.Created.Format(time.DateOnly),
			optional(d.Correspondent),
			optional(d.DocumentType),
			joinInts(d.Tags),
		}
	}
	return rows
}

var documentHeader = []string{"ID", "TITLE", "CREATED", "CORRESPONDENT", "TYPE", "TAGS"}

func newDocumentsListCmd(a *app) *cobra.Command {
	var filter filterFlags
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents matching the filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.filter(cmd)
			if err != nil {
				return err
			}
			docs, err := collect(a.infra.Client.Documents.Filter(cmd.Context(), f), limit)
			if err != nil {
				return err
			}
			return a.render(docs, documentHeader, documentRows(docs))
		},
	}
	filter.bind(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of documents (0 for all)")
	return cmd
}

func newDocumentsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			doc, err := a.infra.Client.Documents.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("document %d not found", id)
			}
			return a.render(doc, documentHeader, documentRows([]documents.Document{*doc}))
		},
	}
}

func newDocumentsUploadCmd(a *app) *cobra.Command {
	var (
		title         string
		created       string
		correspondent int
		documentType  int
		storagePath   int
		asn           int
		tags          []int
		maxSize       string
		allowAny      bool
	)
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document and wait for the import to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := inspect.Options{AllowUnsupported: allowAny}
			if maxSize != "" {
				size, err := units.FromHumanSize(maxSize)
				if err != nil {
					return fmt.Errorf("--max-size: %w", err)
				}
				opts.MaxSize = size
			}

			report, data, err := inspect.File(args[0], opts)
			if err != nil {
				return err
			}
			a.infra.Logger.Info("uploading document",
				"file", report.Name,
				"content_type", report.ContentType,
				"size", report.HumanSize(),
				"pages", report.Pages,
			)

			creation := documents.Creation{
				Document: bytes.NewReader(data),
				FileName: report.Name,
				Tags:     tags,
			}
			flags := cmd.Flags()
			if title != "" {
				creation.Title = &title
			}
			if created != "" {
				t, err := parseTime("created", created)
				if err != nil {
					return err
				}
				creation.Created = t
			}
			if flags.Changed("correspondent") {
				creation.Correspondent = &correspondent
			}
			if flags.Changed("document-type") {
				creation.DocumentType = &documentType
			}
			if flags.Changed("storage-path") {
				creation.StoragePath = &storagePath
			}
			if flags.Changed("asn") {
				creation.ArchiveSerialNumber = &asn
			}

			result, err := a.infra.Client.Documents.Create(cmd.Context(), creation)
			if err != nil {
				return err
			}

			switch r := result.(type) {
			case documents.Created:
				fmt.Fprintf(a.out, "created document %d\n", r.ID)
			case documents.ImportStarted:
				fmt.Fprintln(a.out, "import started")
			case documents.ImportFailed:
				return fmt.Errorf("import failed: %s", r.Message)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "Document title")
	flags.StringVar(&created, "created", "", "Creation date or timestamp")
	flags.IntVar(&correspondent, "correspondent", 0, "Correspondent id")
	flags.IntVar(&documentType, "document-type", 0, "Document type id")
	flags.IntVar(&storagePath, "storage-path", 0, "Storage path id")
	flags.IntVar(&asn, "asn", 0, "Archive serial number")
	flags.IntSliceVar(&tags, "tag", nil, "Tag id (repeatable)")
	flags.StringVar(&maxSize, "max-size", "", "Reject files larger than this size, such as 50MB")
	flags.BoolVar(&allowAny, "allow-unsupported", false, "Upload files of unrecognized content types")
	return cmd
}

func newDocumentsDownloadCmd(a *app) *cobra.Command {
	var original bool
	var output string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a document file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			download := a.infra.Client.Documents.Download
			if original {
				download = a.infra.Client.Documents.DownloadOriginal
			}
			content, err := download(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer content.Close()

			if output == "-" {
				_, err := io.Copy(a.out, content.Body)
				return err
			}
			if output == "" {
				output = content.Filename
				if output == "" {
					output = fmt.Sprintf("%d.bin", id)
				}
				output = filepath.Base(output)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			n, err := io.Copy(f, content.Body)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			fmt.Fprintf(a.out, "%s (%s)\n", output, units.HumanSize(float64(n)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&original, "original", false, "Download the original instead of the archived version")
	cmd.Flags().StringVarP(&output, "file", "f", "", "Output file, - for stdout (default: server file name)")
	return cmd
}

func newDocumentsMetadataCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <id>",
		Short: "Show stored file metadata of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			meta, err := a.infra.Client.Documents.Metadata(cmd.Context(), id)
			if err != nil {
				return err
			}
			if meta == nil {
				return fmt.Errorf("document %d not found", id)
			}

			rows := [][]string{
				{"original", meta.OriginalFilename, meta.OriginalMimeType, units.HumanSize(float64(meta.OriginalSize)), meta.OriginalChecksum},
			}
			if meta.HasArchiveVersion && meta.ArchiveSize != nil {
				rows = append(rows, []string{
					"archive", optional(meta.ArchiveMediaFilename), "application/pdf",
					units.HumanSize(float64(*meta.ArchiveSize)), optional(meta.ArchiveChecksum),
				})
			}
			return a.render(meta, []string{"VERSION", "FILE", "TYPE", "SIZE", "CHECKSUM"}, rows)
		},
	}
}

func newDocumentsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.infra.Client.Documents.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted document %d\n", id)
			return nil
		},
	}
}
