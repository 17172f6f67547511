// Package archive keeps a capped history of generated invoices so a
// dispatcher can re-open or re-download an invoice without the original job.
package archive

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Kind identifies the payload stored for an archived invoice.
type Kind int

const (
	// KindUnknown marks a payload whose format marker was not recognized.
	KindUnknown Kind = iota
	// KindRaster is a self-contained JPEG snapshot of the rendered invoice.
	KindRaster
	// KindPDF is a ready-made paginated document, kept for records written
	// by the historical export path that archived the assembled PDF.
	KindPDF
)

const (
	rasterPrefix = "data:image/jpeg;base64,"
	pdfPrefix    = "data:application/pdf;base64,"
)

// Document is the tagged payload variant of an archived invoice.
// It serializes as a data URI so the persisted store stays readable by
// tooling that predates the tagged representation.
type Document struct {
	Kind Kind
	Data []byte
}

// RasterDocument wraps an encoded JPEG snapshot.
func RasterDocument(jpeg []byte) Document {
	return Document{Kind: KindRaster, Data: jpeg}
}

// PDFDocument wraps an assembled PDF byte stream.
func PDFDocument(pdf []byte) Document {
	return Document{Kind: KindPDF, Data: pdf}
}

// MarshalJSON encodes the document as a data URI string.
func (d Document) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindRaster:
		return json.Marshal(rasterPrefix + base64.StdEncoding.EncodeToString(d.Data))
	case KindPDF:
		return json.Marshal(pdfPrefix + base64.StdEncoding.EncodeToString(d.Data))
	default:
		// Preserve the original payload verbatim so an unrecognized record
		// survives a load/store round trip untouched.
		return json.Marshal(string(d.Data))
	}
}

// UnmarshalJSON dispatches on the data URI marker. Records with an
// unrecognized marker load as KindUnknown; the viewer rejects them instead
// of producing an empty document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(raw, pdfPrefix):
		decoded, err := base64.StdEncoding.DecodeString(raw[len(pdfPrefix):])
		if err != nil {
			break
		}
		*d = Document{Kind: KindPDF, Data: decoded}
		return nil
	case strings.HasPrefix(raw, rasterPrefix):
		decoded, err := base64.StdEncoding.DecodeString(raw[len(rasterPrefix):])
		if err != nil {
			break
		}
		*d = Document{Kind: KindRaster, Data: decoded}
		return nil
	}
	*d = Document{Kind: KindUnknown, Data: []byte(raw)}
	return nil
}

// Record is an archived snapshot of a generated invoice. Job fields are
// denormalized copies captured at export time, not live references.
type Record struct {
	ID            int64    `json:"id"`
	InvoiceNumber string   `json:"invoiceNumber"`
	Date          string   `json:"date"`
	CustomerName  string   `json:"customerName"`
	OBNumber      string   `json:"obNumber"`
	Amount        *float64 `json:"amount,omitempty"`
	Document      Document `json:"pdfData"`
}
