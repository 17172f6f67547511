// Package layout renders the invoice document layout as self-contained
// HTML, fully resolved before any capture happens.
package layout

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/towline/towline/internal/company"
	"github.com/towline/towline/internal/dispatch"
)

//go:embed templates/invoice.html
var templates embed.FS

// Width is the fixed logical layout width in pixels, an A4 page at 96 DPI.
const Width = 794

// Snapshot is a fully resolved invoice layout: the rasterizer needs
// nothing beyond it to capture the document.
type Snapshot struct {
	HTML  string
	Width int
}

type payload struct {
	Job           dispatch.Job
	Company       company.Info
	InvoiceNumber string
	Date          string
}

// Renderer builds layout snapshots from the embedded invoice template.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the invoice template.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"money": func(amount *float64) string {
			if amount == nil {
				return "R [Manual]"
			}
			return fmt.Sprintf("R%.2f", *amount)
		},
		"hasBankDetails": func(info company.Info) bool {
			return info.BankName != nil || info.AccountNumber != nil || info.SortCode != nil
		},
		"upper": strings.ToUpper,
	}

	tpl, err := template.New("invoice.html").Funcs(funcMap).ParseFS(templates, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("layout: parse invoice template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Snapshot resolves the invoice layout for a job at the fixed logical
// width. Company info and job fields are copied into the markup now; the
// snapshot never references live state.
func (r *Renderer) Snapshot(job dispatch.Job, info company.Info, invoiceNumber, date string) (Snapshot, error) {
	buf := &bytes.Buffer{}
	err := r.tpl.ExecuteTemplate(buf, "invoice.html", payload{
		Job:           job,
		Company:       info,
		InvoiceNumber: invoiceNumber,
		Date:          date,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("layout: render invoice: %w", err)
	}
	return Snapshot{HTML: buf.String(), Width: Width}, nil
}
