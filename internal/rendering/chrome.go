package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePrinter prints the HTML preview to PDF with headless Chrome.
// Requires Chrome/Chromium on the system; ExecPath overrides discovery.
type ChromePrinter struct {
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromePrinter creates a printer using CHROME_PATH when set.
func NewChromePrinter() *ChromePrinter {
	return &ChromePrinter{
		ExecPath: os.Getenv("CHROME_PATH"),
		Timeout:  60 * time.Second,
	}
}

// PrintPDF loads html in a headless browser and prints it on A4 paper.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	if p.Verbose {
		log.Printf("[BROWSER] Printing %d bytes of HTML", len(html))
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write HTML", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser printing failed", Cause: fmt.Errorf("chromedp: %w", err)}
	}

	if p.Verbose {
		log.Printf("[BROWSER] Printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}
