package invoicing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towline/towline/internal/invoicing/archive"
	"github.com/towline/towline/internal/invoicing/layout"
	"github.com/towline/towline/internal/invoicing/pdf"
	"github.com/towline/towline/internal/invoicing/raster"
)

func TestReexporter_Download_LegacyPDFShape(t *testing.T) {
	re := NewReexporter()
	rec := archive.Record{
		InvoiceNumber: "INV-1",
		Document:      archive.PDFDocument([]byte("%PDF-1.4 stored")),
	}

	doc, err := re.Download(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 stored"), doc)
}

func TestReexporter_Download_RasterMatchesFreshExport(t *testing.T) {
	jpegData := testJPEG(t, 794, 1000)

	// Fresh export of the same raster.
	store := openArchive(t, &memBackend{})
	exp := NewExporter(nil, stubRasterizer{ras: rasterOf(jpegData)}, store, ExporterConfig{})
	fresh, err := exp.Export(context.Background(), layout.Snapshot{}, towJob())
	require.NoError(t, err)

	// Reconstruction from the archived record.
	records := store.List()
	require.Len(t, records, 1)
	re := NewReexporter()
	rebuilt, err := re.Download(records[0])
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(rebuilt, []byte("%PDF-")))
	freshPages := bytes.Count(fresh.PDF, []byte("/Contents"))
	rebuiltPages := bytes.Count(rebuilt, []byte("/Contents"))
	assert.Equal(t, freshPages, rebuiltPages)
}

func TestReexporter_View(t *testing.T) {
	re := NewReexporter()

	data, contentType, err := re.View(archive.Record{Document: archive.PDFDocument([]byte("%PDF-"))})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, []byte("%PDF-"), data)

	jpegData := testJPEG(t, 100, 100)
	data, contentType, err = re.View(archive.Record{Document: archive.RasterDocument(jpegData)})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, jpegData, data)
}

func TestReexporter_UnknownShapeFails(t *testing.T) {
	re := NewReexporter()
	rec := archive.Record{
		InvoiceNumber: "INV-9",
		Document:      archive.Document{Kind: archive.KindUnknown, Data: []byte("data:text/plain;base64,xx")},
	}

	_, err := re.Download(rec)
	assert.ErrorIs(t, err, ErrUnknownDocumentShape)

	_, _, err = re.View(rec)
	assert.ErrorIs(t, err, ErrUnknownDocumentShape)
}

func TestReexporter_UsesSinglePagePolicy(t *testing.T) {
	re := NewReexporter()
	assert.Equal(t, pdf.FitSinglePage, re.pager.Policy)
}

func rasterOf(jpegData []byte) raster.Raster {
	return raster.Raster{Data: jpegData, Width: 794, Height: 1000}
}
