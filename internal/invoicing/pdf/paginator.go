// Package pdf assembles rasterized invoice snapshots into A4 documents.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait page size in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Policy decides how a raster taller than one page is handled.
type Policy int

const (
	// FitSinglePage scales the raster down so the whole invoice lands on
	// exactly one page. This is the authoritative policy for exports: a
	// single-job invoice must not spill across pages.
	FitSinglePage Policy = iota
	// TileMultiPage draws the raster at full page width across successive
	// pages by vertical offset until its height is exhausted.
	TileMultiPage
)

// Paginator lays one JPEG raster onto fixed-size A4 pages.
type Paginator struct {
	Policy Policy
}

// PageCount reports how many pages a raster of the given pixel dimensions
// produces under the paginator's policy.
func (p Paginator) PageCount(imgW, imgH int) int {
	if p.Policy == FitSinglePage || imgW <= 0 {
		return 1
	}
	hMM := float64(imgH) * PageWidthMM / float64(imgW)
	pages := int(math.Ceil(hMM / PageHeightMM))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Render produces the PDF byte stream embedding the JPEG raster. The image
// is always drawn at full page width; its proportional height decides the
// placement per the policy.
func (p Paginator) Render(jpeg []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(jpeg))
	if err != nil {
		return nil, fmt.Errorf("pdf: decode raster: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("pdf: raster has no extent")
	}

	hMM := float64(cfg.Height) * PageWidthMM / float64(cfg.Width)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPEG", AllowNegativePosition: true}
	doc.RegisterImageOptionsReader("invoice", opts, bytes.NewReader(jpeg))

	switch p.Policy {
	case TileMultiPage:
		heightLeft := hMM
		position := 0.0
		doc.AddPage()
		doc.ImageOptions("invoice", 0, position, PageWidthMM, hMM, false, opts, 0, "")
		heightLeft -= PageHeightMM
		for heightLeft > 0 {
			position = heightLeft - hMM
			doc.AddPage()
			doc.ImageOptions("invoice", 0, position, PageWidthMM, hMM, false, opts, 0, "")
			heightLeft -= PageHeightMM
		}
	default:
		doc.AddPage()
		if hMM <= PageHeightMM {
			doc.ImageOptions("invoice", 0, 0, PageWidthMM, hMM, false, opts, 0, "")
		} else {
			scale := PageHeightMM / hMM
			scaledW := PageWidthMM * scale
			xOffset := (PageWidthMM - scaledW) / 2
			doc.ImageOptions("invoice", xOffset, 0, scaledW, PageHeightMM, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: assemble document: %w", err)
	}
	return buf.Bytes(), nil
}
