// Package export copies documents from a Paperless server into blob storage.
//
// Each document is written under <prefix>/<id>/ as the downloaded file plus a
// document.json holding its metadata. Downloads run concurrently up to the
// configured limit; the first failure cancels the remaining work.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/paperless/documents"
	"github.com/JaimeStill/paperless/internal/config"
	"github.com/JaimeStill/paperless/pkg/logging"
	"github.com/JaimeStill/paperless/pkg/storage"
)

// ErrExportFailed wraps the first document failure.
var ErrExportFailed = errors.New("export failed")

// MetadataFile is the name of the per-document metadata object.
const MetadataFile = "document.json"

// Source supplies documents and their files.
type Source interface {
	Filter(ctx context.Context, filter documents.Filter) iter.Seq2[documents.Document, error]
	Download(ctx context.Context, id int) (*documents.Content, error)
	DownloadOriginal(ctx context.Context, id int) (*documents.Content, error)
}

// Summary counts the outcome of a run.
type Summary struct {
	Exported int
	Skipped  int
	Bytes    int64
}

// Exporter writes documents from a Source into a storage System.
type Exporter struct {
	source    Source
	store     storage.System
	cfg       config.ExportConfig
	overwrite bool
	logger    *slog.Logger
}

// New creates an Exporter. Existing exports are skipped unless overwrite is set.
func New(source Source, store storage.System, cfg config.ExportConfig, overwrite bool, logger *slog.Logger) *Exporter {
	return &Exporter{
		source:    source,
		store:     store,
		cfg:       cfg,
		overwrite: overwrite,
		logger:    logging.OrDiscard(logger).With("system", "export"),
	}
}

// Run exports every document matching filter.
func (e *Exporter) Run(ctx context.Context, filter documents.Filter) (*Summary, error) {
	var exported, skipped atomic.Int32
	var written atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	for doc, err := range e.source.Filter(gctx, filter) {
		if err != nil {
			if werr := g.Wait(); werr != nil {
				return nil, fmt.Errorf("%w: %w", ErrExportFailed, werr)
			}
			return nil, fmt.Errorf("%w: list documents: %w", ErrExportFailed, err)
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			n, done, err := e.export(gctx, doc)
			if err != nil {
				return fmt.Errorf("document %d: %w", doc.ID, err)
			}
			if !done {
				skipped.Add(1)
				return nil
			}

			exported.Add(1)
			written.Add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	summary := &Summary{
		Exported: int(exported.Load()),
		Skipped:  int(skipped.Load()),
		Bytes:    written.Load(),
	}
	e.logger.Info("export complete", "exported", summary.Exported, "skipped", summary.Skipped, "bytes", summary.Bytes)
	return summary, nil
}

// Key returns the storage key prefix of document id.
func (e *Exporter) Key(id int) string {
	return path.Join(e.cfg.Prefix, strconv.Itoa(id))
}

func (e *Exporter) export(ctx context.Context, doc documents.Document) (int64, bool, error) {
	metaKey := path.Join(e.Key(doc.ID), MetadataFile)

	if !e.overwrite {
		exists, err := e.store.Validate(ctx, metaKey)
		if err != nil {
			return 0, false, fmt.Errorf("check existing export: %w", err)
		}
		if exists {
			e.logger.Debug("document already exported", "id", doc.ID)
			return 0, false, nil
		}
	}

	download := e.source.Download
	if e.cfg.Original {
		download = e.source.DownloadOriginal
	}

	content, err := download(ctx, doc.ID)
	if err != nil {
		return 0, false, fmt.Errorf("download: %w", err)
	}
	defer content.Close()

	data, err := io.ReadAll(content.Body)
	if err != nil {
		return 0, false, fmt.Errorf("read download: %w", err)
	}

	if err := e.store.Store(ctx, path.Join(e.Key(doc.ID), fileName(doc, content)), data); err != nil {
		return 0, false, fmt.Errorf("store file: %w", err)
	}

	meta, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, false, fmt.Errorf("encode metadata: %w", err)
	}
	// metadata marks a complete export and is written last
	if err := e.store.Store(ctx, metaKey, meta); err != nil {
		return 0, false, fmt.Errorf("store metadata: %w", err)
	}

	e.logger.Debug("document exported", "id", doc.ID, "bytes", len(data))
	return int64(len(data)), true, nil
}

func fileName(doc documents.Document, content *documents.Content) string {
	name := content.Filename
	if name == "" && doc.ArchivedFileName != nil {
		name = *doc.ArchivedFileName
	}
	if name == "" {
		name = doc.OriginalFileName
	}

	name = path.Base(name)
	if name == "" || name == "." || name == "/" || name == MetadataFile {
		name = strconv.Itoa(doc.ID) + ".bin"
	}
	return name
}
