// Package raster captures a rendered invoice layout as a fixed-width JPEG
// using Gotenberg's headless-Chromium screenshot API.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultWidth is the logical capture width in pixels, an A4 page at 96 DPI.
// Captures are forced to this width regardless of any viewport default.
const DefaultWidth = 794

// Raster is a self-contained JPEG snapshot with intrinsic dimensions.
type Raster struct {
	Data   []byte
	Width  int
	Height int
}

// Client wraps the Gotenberg screenshot endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	width      int
	quality    int
	waitDelay  time.Duration
}

// NewClient constructs a screenshot client with invoice-capture defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		width:     DefaultWidth,
		quality:   90,
		waitDelay: 200 * time.Millisecond,
	}
}

// Ping checks if the remote Gotenberg service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// Capture renders raw HTML and returns a fixed-width JPEG raster. The
// screenshot is requested as PNG, flattened onto an opaque white canvas
// (transparency would smear through JPEG encoding) and re-encoded at high
// quality. Chromium loads cross-origin images such as a hosted company
// logo, so the capture is never tainted by them.
func (c *Client) Capture(ctx context.Context, html string) (Raster, error) {
	if c == nil || c.baseURL == "" {
		return Raster{}, fmt.Errorf("raster: gotenberg endpoint required")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return Raster{}, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return Raster{}, err
	}
	if err := writer.WriteField("width", strconv.Itoa(c.width)); err != nil {
		return Raster{}, err
	}
	if err := writer.WriteField("format", "png"); err != nil {
		return Raster{}, err
	}
	if err := writer.WriteField("waitDelay", c.waitDelay.String()); err != nil {
		return Raster{}, err
	}
	if err := writer.Close(); err != nil {
		return Raster{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/screenshot/html", c.baseURL), body)
	if err != nil {
		return Raster{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Raster{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Raster{}, fmt.Errorf("raster: gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	shot, err := io.ReadAll(resp.Body)
	if err != nil {
		return Raster{}, err
	}
	return c.normalize(shot)
}

// normalize flattens the screenshot onto white, constrains it to the
// logical capture width and encodes JPEG.
func (c *Client) normalize(shot []byte) (Raster, error) {
	img, err := imaging.Decode(bytes.NewReader(shot))
	if err != nil {
		return Raster{}, fmt.Errorf("raster: decode screenshot: %w", err)
	}
	if img.Bounds().Dx() > c.width {
		img = imaging.Resize(img, c.width, 0, imaging.Lanczos)
	}

	flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return Raster{}, fmt.Errorf("raster: encode jpeg: %w", err)
	}
	return Raster{
		Data:   buf.Bytes(),
		Width:  flat.Bounds().Dx(),
		Height: flat.Bounds().Dy(),
	}, nil
}
