// Package inspect examines files before they are uploaded, rejecting content
// the server cannot consume and reporting PDF page counts.
package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	ErrEmpty           = errors.New("file is empty")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrInvalidPDF      = errors.New("invalid pdf")
)

// PDF is the content type that receives page validation.
const PDF = "application/pdf"

// supported lists the content types the consumer accepts without office conversion.
var supported = map[string]bool{
	PDF:          true,
	"image/png":  true,
	"image/jpeg": true,
	"image/tiff": true,
	"image/gif":  true,
	"image/webp": true,
	"text/plain": true,
	"text/csv":   true,
}

// Report summarizes an inspected file.
type Report struct {
	Name        string
	ContentType string
	Size        int64
	Pages       int
}

// HumanSize returns the size in decimal units, such as "1.2MB".
func (r *Report) HumanSize() string {
	return units.HumanSize(float64(r.Size))
}

// Supported reports whether the consumer accepts contentType.
func Supported(contentType string) bool {
	return supported[contentType]
}

// Options limits what Inspect accepts.
type Options struct {
	// MaxSize rejects larger files when positive.
	MaxSize int64

	// AllowUnsupported skips the content type check.
	AllowUnsupported bool
}

// Inspect detects the content type of data and validates PDFs.
func Inspect(name string, data []byte, opts Options) (*Report, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if opts.MaxSize > 0 && int64(len(data)) > opts.MaxSize {
		return nil, fmt.Errorf("%w: %s exceeds %s",
			ErrTooLarge, units.HumanSize(float64(len(data))), units.HumanSize(float64(opts.MaxSize)))
	}

	report := &Report{
		Name:        filepath.Base(name),
		ContentType: DetectContentType(name, data),
		Size:        int64(len(data)),
	}

	if !opts.AllowUnsupported && !Supported(report.ContentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, report.ContentType)
	}

	if report.ContentType == PDF {
		pages, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPDF, err)
		}
		report.Pages = pages
	}

	return report, nil
}

// File reads and inspects the file at path, returning its contents with the report.
func File(path string, opts Options) (*Report, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	report, err := Inspect(path, data, opts)
	if err != nil {
		return nil, nil, err
	}
	return report, data, nil
}

// DetectContentType prefers the file extension and falls back to content sniffing.
// Parameters such as charset are dropped.
func DetectContentType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		if media, _, err := mime.ParseMediaType(t); err == nil {
			return media
		}
	}

	media, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return media
}
