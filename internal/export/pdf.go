package export

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/chromedp/chromedp"
	"github.com/go-pdf/fpdf"
)

// Raster settings for the PDF pipeline: the report HTML is rendered in
// headless Chrome at 2x device scale, captured as JPEG at quality 98,
// then placed on an A4 portrait page with 10mm margins.
const (
	rasterQuality = 98
	rasterScale   = 2.0
	// A4 at 96 CSS pixels per inch
	viewportWidth  = 794
	viewportHeight = 1123

	pageMarginMM   = 10
	contentWidthMM = 210 - 2*pageMarginMM
)

// ChromeRenderer rasterizes report HTML with a headless Chrome
// instance and assembles the capture into a PDF. It satisfies
// Renderer; each Render call runs one browser session scoped to ctx.
type ChromeRenderer struct{}

// NewChromeRenderer returns a renderer backed by the local Chrome or
// Chromium installation.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{}
}

// Render blocks until the rasterization resolves or ctx is done.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	doc := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head><body>" + html + "</body></html>"

	var shot []byte
	err := chromedp.Run(cctx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(rasterScale)),
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(doc)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, rasterQuality),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome rasterization failed: %w", err)
	}

	return assemblePDF(shot)
}

// assemblePDF places the JPEG capture onto an A4 portrait page.
// Content taller than one page is left to the sink's native behavior.
func assemblePDF(jpeg []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("report", opts, bytes.NewReader(jpeg))
	pdf.ImageOptions("report", pageMarginMM, pageMarginMM, contentWidthMM, 0, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf assembly failed: %w", err)
	}
	return buf.Bytes(), nil
}
