package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// pageCountOf counts pages in an assembled PDF; every page carries exactly
// one /Contents reference.
func pageCountOf(doc []byte) int {
	return bytes.Count(doc, []byte("/Contents"))
}

func TestPaginator_FitSinglePage_ShortImage(t *testing.T) {
	p := Paginator{Policy: FitSinglePage}

	// 794x1000 px: proportional height 1000*210/794 = 264mm, fits 297mm.
	assert.Equal(t, 1, p.PageCount(794, 1000))

	doc, err := p.Render(testJPEG(t, 794, 1000))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Equal(t, 1, pageCountOf(doc))
}

func TestPaginator_FitSinglePage_TallImageStaysOnePage(t *testing.T) {
	p := Paginator{Policy: FitSinglePage}

	assert.Equal(t, 1, p.PageCount(794, 3000))

	doc, err := p.Render(testJPEG(t, 794, 3000))
	require.NoError(t, err)
	assert.Equal(t, 1, pageCountOf(doc))
}

func TestPaginator_TileMultiPage_PageCount(t *testing.T) {
	p := Paginator{Policy: TileMultiPage}

	// 794x1000 px fits one page.
	assert.Equal(t, 1, p.PageCount(794, 1000))
	// 794x3000 px: 793mm of content over 297mm pages = 3 pages.
	assert.Equal(t, 3, p.PageCount(794, 3000))

	doc, err := p.Render(testJPEG(t, 794, 3000))
	require.NoError(t, err)
	assert.Equal(t, 3, pageCountOf(doc))
}

func TestPaginator_TileMatchesCeilFormula(t *testing.T) {
	p := Paginator{Policy: TileMultiPage}
	cases := []struct {
		w, h  int
		pages int
	}{
		{794, 500, 1},
		{794, 1122, 1},
		{794, 1200, 2},
		{794, 2244, 2},
		{1588, 2400, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.pages, p.PageCount(tc.w, tc.h), "dims %dx%d", tc.w, tc.h)
	}
}

func TestPaginator_RejectsGarbage(t *testing.T) {
	p := Paginator{Policy: FitSinglePage}
	_, err := p.Render([]byte("not a jpeg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode raster")
}
