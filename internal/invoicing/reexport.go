package invoicing

import (
	"errors"
	"fmt"

	"github.com/towline/towline/internal/invoicing/archive"
	"github.com/towline/towline/internal/invoicing/pdf"
)

// ErrUnknownDocumentShape marks an archived record whose payload format
// was not recognized. It surfaces to the user instead of silently
// producing an empty document.
var ErrUnknownDocumentShape = errors.New("archived invoice has an unrecognized document format")

// Reexporter reconstructs a viewable or downloadable document from an
// archived record, without the original job or layout.
type Reexporter struct {
	pager pdf.Paginator
}

// NewReexporter uses the same pagination policy as fresh exports, so a
// re-exported raster produces the same page count as the original run.
func NewReexporter() Reexporter {
	return Reexporter{pager: pdf.Paginator{Policy: pdf.FitSinglePage}}
}

// Download returns the PDF bytes for a record: a stored document as-is, a
// stored raster re-paginated on demand.
func (r Reexporter) Download(rec archive.Record) ([]byte, error) {
	switch rec.Document.Kind {
	case archive.KindPDF:
		return rec.Document.Data, nil
	case archive.KindRaster:
		doc, err := r.pager.Render(rec.Document.Data)
		if err != nil {
			return nil, fmt.Errorf("invoicing: re-paginate %s: %w", rec.InvoiceNumber, err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: invoice %s", ErrUnknownDocumentShape, rec.InvoiceNumber)
	}
}

// View returns the bytes and content type for displaying a record
// directly. A stored raster is shown as the raw image; page semantics only
// matter for download.
func (r Reexporter) View(rec archive.Record) ([]byte, string, error) {
	switch rec.Document.Kind {
	case archive.KindPDF:
		return rec.Document.Data, "application/pdf", nil
	case archive.KindRaster:
		return rec.Document.Data, "image/jpeg", nil
	default:
		return nil, "", fmt.Errorf("%w: invoice %s", ErrUnknownDocumentShape, rec.InvoiceNumber)
	}
}
