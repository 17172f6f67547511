package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/towline/towline/internal/company"
	"github.com/towline/towline/internal/dispatch"
	"github.com/towline/towline/internal/invoicing"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Config           *Config
	DispatchHandler  *dispatch.Handler
	CompanyHandler   *company.Handler
	InvoicingHandler *invoicing.Handler
}

// NewRouter constructs the chi.Router with Towline defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Config) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/jobs", func(r chi.Router) {
		params.DispatchHandler.MountRoutes(r)
		params.InvoicingHandler.MountJobRoutes(r)
	})
	r.Route("/api/company", params.CompanyHandler.MountRoutes)
	r.Route("/api/invoices", params.InvoicingHandler.MountInvoiceRoutes)

	return r
}
