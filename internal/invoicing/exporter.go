// Package invoicing owns the invoice export pipeline: capture a resolved
// layout, paginate it into an A4 PDF, archive a snapshot and hand the
// document back for download.
package invoicing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/towline/towline/internal/dispatch"
	"github.com/towline/towline/internal/invoicing/archive"
	"github.com/towline/towline/internal/invoicing/layout"
	"github.com/towline/towline/internal/invoicing/pdf"
	"github.com/towline/towline/internal/invoicing/raster"
)

// ErrExportInFlight rejects an export requested while another one is
// running on the same exporter.
var ErrExportInFlight = errors.New("an invoice export is already in progress")

// Rasterizer turns a resolved layout into a fixed-width JPEG raster.
type Rasterizer interface {
	Capture(ctx context.Context, html string) (raster.Raster, error)
}

// ExportResult is a finished export ready for download.
type ExportResult struct {
	InvoiceNumber string
	Filename      string
	PDF           []byte
}

// ExporterConfig tunes the export pipeline.
type ExporterConfig struct {
	// SettleDelay is a short pause before capture so pending visual
	// transitions in the layout can finish. It is a stability guard, not
	// something correctness may depend on.
	SettleDelay time.Duration
	// Timeout bounds the whole pipeline so a hung rasterizer cannot hold
	// the in-flight guard forever.
	Timeout time.Duration
}

// Exporter sequences rasterize, paginate, archive and download for one
// invoice at a time.
type Exporter struct {
	logger     *slog.Logger
	rasterizer Rasterizer
	pager      pdf.Paginator
	store      *archive.Archive
	cfg        ExporterConfig
	inFlight   atomic.Bool
	now        func() time.Time
}

// NewExporter wires the export pipeline. The paginator always fits the
// invoice onto a single page.
func NewExporter(logger *slog.Logger, rasterizer Rasterizer, store *archive.Archive, cfg ExporterConfig) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		logger:     logger,
		rasterizer: rasterizer,
		pager:      pdf.Paginator{Policy: pdf.FitSinglePage},
		store:      store,
		cfg:        cfg,
		now:        time.Now,
	}
}

// InvoiceNumberFor returns the job's assigned invoice number, or
// synthesizes one from the OB number and the trailing fragment of the
// job id.
func InvoiceNumberFor(job dispatch.Job) string {
	if job.InvoiceNumber != nil && *job.InvoiceNumber != "" {
		return *job.InvoiceNumber
	}
	suffix := job.ID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("INV-%s-%s", job.OBNumber, suffix)
}

// Export runs the pipeline once. At most one export runs at a time; a
// concurrent call returns ErrExportInFlight with no side effects. The
// archive write is best-effort: its failure is logged and the document
// still ships.
func (e *Exporter) Export(ctx context.Context, snap layout.Snapshot, job dispatch.Job) (ExportResult, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return ExportResult{}, ErrExportInFlight
	}
	defer e.inFlight.Store(false)

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	if e.cfg.SettleDelay > 0 {
		timer := time.NewTimer(e.cfg.SettleDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ExportResult{}, ctx.Err()
		}
	}

	ras, err := e.rasterizer.Capture(ctx, snap.HTML)
	if err != nil {
		return ExportResult{}, fmt.Errorf("invoicing: rasterize layout: %w", err)
	}

	doc, err := e.pager.Render(ras.Data)
	if err != nil {
		return ExportResult{}, fmt.Errorf("invoicing: paginate: %w", err)
	}

	invoiceNumber := InvoiceNumberFor(job)

	// The raster is the durable snapshot, never the assembled PDF;
	// re-pagination happens at reconstruction time.
	rec := archive.Record{
		ID:            e.now().UnixMilli(),
		InvoiceNumber: invoiceNumber,
		Date:          e.now().Format("2006-01-02"),
		CustomerName:  job.CustomerName,
		OBNumber:      job.OBNumber,
		Amount:        job.Price,
		Document:      archive.RasterDocument(ras.Data),
	}
	if err := e.store.Upsert(ctx, rec); err != nil {
		e.logger.Warn("invoice archive write failed",
			slog.String("invoice", invoiceNumber), slog.Any("error", err))
	}

	return ExportResult{
		InvoiceNumber: invoiceNumber,
		Filename:      fmt.Sprintf("Invoice-%s.pdf", invoiceNumber),
		PDF:           doc,
	}, nil
}
