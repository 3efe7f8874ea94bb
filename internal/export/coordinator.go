// Package export orchestrates report generation and hands the results
// to the format sinks: a spreadsheet workbook, a rasterized PDF, and a
// Word-compatible document.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wargadata-dev/warga-store/internal/format"
	"github.com/wargadata-dev/warga-store/internal/registry"
	"github.com/wargadata-dev/warga-store/internal/report"
)

// ErrEmptyRegistry is returned when an export is requested with zero
// records. No file is produced.
var ErrEmptyRegistry = errors.New("no records to export")

// filenamePrefix starts every export filename; the file timestamp and
// extension complete it.
const filenamePrefix = "Data_Penduduk_"

// MIME types of the three export formats.
const (
	MIMEExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF   = "application/pdf"
	MIMEWord  = "application/vnd.ms-word"
)

// Renderer rasterizes an HTML fragment into PDF bytes. The call is the
// one asynchronous suspension point in the engine; implementations
// must respect ctx but no cancellation path beyond it exists.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// File is a finished export ready to be delivered: streamed as a
// download or written to the export directory.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Coordinator builds export files from the registry's current
// contents.
type Coordinator struct {
	reg      *registry.Registry
	renderer Renderer
	outDir   string
	logger   *log.Logger
}

// NewCoordinator wires a coordinator to the registry, a PDF renderer,
// and the directory WriteFile saves into.
func NewCoordinator(reg *registry.Registry, renderer Renderer, outDir string, logger *log.Logger) *Coordinator {
	return &Coordinator{reg: reg, renderer: renderer, outDir: outDir, logger: logger}
}

// ExportExcel builds the spreadsheet workbook.
func (c *Coordinator) ExportExcel() (*File, error) {
	records, err := c.reg.List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyRegistry
	}

	data, err := buildWorkbook(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	f := &File{Name: c.filename("xlsx"), MIME: MIMEExcel, Data: data}
	c.logDone("excel", f)
	return f, nil
}

// ExportPDF builds the PDF. It blocks until the renderer's
// rasterization resolves; success is never reported before that.
func (c *Coordinator) ExportPDF(ctx context.Context) (*File, error) {
	records, err := c.reg.List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyRegistry
	}

	html := report.PDFHTML(records, time.Now())
	data, err := c.renderer.Render(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("pdf rasterization failed: %w", err)
	}

	f := &File{Name: c.filename("pdf"), MIME: MIMEPDF, Data: data}
	c.logDone("pdf", f)
	return f, nil
}

// ExportWord builds the Word-compatible document. The payload is the
// document HTML itself; no further encoding applies.
func (c *Coordinator) ExportWord() (*File, error) {
	records, err := c.reg.List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyRegistry
	}

	f := &File{
		Name: c.filename("doc"),
		MIME: MIMEWord,
		Data: []byte(report.DocHTML(records, time.Now())),
	}
	c.logDone("word", f)
	return f, nil
}

// WriteFile saves a built export into the output directory and returns
// the full path.
func (c *Coordinator) WriteFile(f *File) (string, error) {
	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(c.outDir, f.Name)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Coordinator) filename(ext string) string {
	return filenamePrefix + format.FileTimestamp(time.Now()) + "." + ext
}

func (c *Coordinator) logDone(kind string, f *File) {
	if c.logger != nil {
		c.logger.Info("export built", "kind", kind, "file", f.Name, "bytes", len(f.Data))
	}
}
