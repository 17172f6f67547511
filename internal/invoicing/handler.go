package invoicing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/towline/towline/internal/company"
	"github.com/towline/towline/internal/dispatch"
	"github.com/towline/towline/internal/invoicing/archive"
	"github.com/towline/towline/internal/invoicing/layout"
	"github.com/towline/towline/internal/platform/httpx"
)

// JobSource supplies the job being invoiced and records the outcome.
type JobSource interface {
	Get(ctx context.Context, id string) (*dispatch.Job, error)
	MarkInvoiced(ctx context.Context, id, invoiceNumber string) error
}

// CompanySource supplies the dispatcher's settings at export time.
type CompanySource interface {
	Get(ctx context.Context) (*company.Info, error)
}

type Handler struct {
	logger     *slog.Logger
	layouts    *layout.Renderer
	exporter   *Exporter
	reexporter Reexporter
	store      *archive.Archive
	jobs       JobSource
	companyInf CompanySource
}

func NewHandler(
	logger *slog.Logger,
	layouts *layout.Renderer,
	exporter *Exporter,
	reexporter Reexporter,
	store *archive.Archive,
	jobs JobSource,
	companyInf CompanySource,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		layouts:    layouts,
		exporter:   exporter,
		reexporter: reexporter,
		store:      store,
		jobs:       jobs,
		companyInf: companyInf,
	}
}

// MountJobRoutes adds the export action to the jobs subrouter.
func (h *Handler) MountJobRoutes(r chi.Router) {
	r.Post("/{id}/invoice", h.Export)
}

// MountInvoiceRoutes adds the archive endpoints.
func (h *Handler) MountInvoiceRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}/download", h.Download)
	r.Get("/{id}/view", h.View)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	job, err := h.jobs.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	info, err := h.companyInf.Get(ctx)
	if err != nil {
		h.logger.Error("load company info for export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed",
			"company settings are required to generate an invoice")
		return
	}

	invoiceNumber := InvoiceNumberFor(*job)
	snap, err := h.layouts.Snapshot(*job, *info, invoiceNumber, h.exporter.now().Format("2006-01-02"))
	if err != nil {
		h.logger.Error("render invoice layout", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed",
			"failed to generate the invoice, please try again")
		return
	}

	result, err := h.exporter.Export(ctx, snap, *job)
	if err != nil {
		if errors.Is(err, ErrExportInFlight) {
			httpx.Problem(w, http.StatusConflict, "Export In Progress", err.Error())
			return
		}
		h.logger.Error("export invoice", slog.String("job", job.ID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed",
			"failed to generate the invoice, please try again")
		return
	}

	// Best-effort status update; the download must not fail on it.
	_ = h.jobs.MarkInvoiced(ctx, job.ID, result.InvoiceNumber)

	serveAttachment(w, result.Filename, result.PDF)
}

// recordSummary is a list entry without the document payload.
type recordSummary struct {
	ID            int64    `json:"id"`
	InvoiceNumber string   `json:"invoiceNumber"`
	Date          string   `json:"date"`
	CustomerName  string   `json:"customerName"`
	OBNumber      string   `json:"obNumber"`
	Amount        *float64 `json:"amount,omitempty"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records := h.store.List()
	summaries := make([]recordSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, recordSummary{
			ID:            rec.ID,
			InvoiceNumber: rec.InvoiceNumber,
			Date:          rec.Date,
			CustomerName:  rec.CustomerName,
			OBNumber:      rec.OBNumber,
			Amount:        rec.Amount,
		})
	}
	httpx.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recordFromRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.reexporter.Download(rec)
	if err != nil {
		if errors.Is(err, ErrUnknownDocumentShape) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unreadable Record", err.Error())
			return
		}
		h.logger.Error("reconstruct invoice", slog.String("invoice", rec.InvoiceNumber), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Download Failed",
			"failed to reconstruct the invoice document")
		return
	}
	serveAttachment(w, fmt.Sprintf("Invoice-%s.pdf", rec.InvoiceNumber), doc)
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recordFromRequest(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.reexporter.View(rec)
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unreadable Record", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	// The caller confirms deletion explicitly; without it the store is
	// untouched.
	if r.URL.Query().Get("confirm") != "true" {
		httpx.Problem(w, http.StatusBadRequest, "Confirmation Required",
			"deleting an invoice record requires confirm=true")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, archive.ErrRecordNotFound) {
			httpx.RespondError(w, fmt.Errorf("%w: record %d", httpx.ErrNotFound, id))
			return
		}
		// Persistence failure: the in-memory store already dropped the
		// record, the next successful write catches the backend up.
		h.logger.Warn("persist archive after delete", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) recordFromRequest(w http.ResponseWriter, r *http.Request) (archive.Record, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record id")
		return archive.Record{}, false
	}
	rec, err := h.store.Get(id)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: record %d", httpx.ErrNotFound, id))
		return archive.Record{}, false
	}
	return rec, true
}

func serveAttachment(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
