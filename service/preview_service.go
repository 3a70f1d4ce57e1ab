package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Preview formats
const (
	PreviewPDF = "pdf"
	PreviewPNG = "png"
)

// PreviewService renders served edit pages to PDF or PNG with headless Chrome
type PreviewService struct {
	baseURL    string // server hosting /admin/edit-pages/{id}, e.g. "http://localhost:8080"
	chromePath string
	timeout    time.Duration
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(baseURL, chromePath string) *PreviewService {
	return &PreviewService{
		baseURL:    baseURL,
		chromePath: detectChromePath(chromePath),
		timeout:    30 * time.Second,
	}
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// detectChromePath returns the configured Chrome/Chromium executable when it
// exists, then the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	// Common paths to check
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// PageURL returns the address the preview browser loads for product id
func (s *PreviewService) PageURL(id int) string {
	return fmt.Sprintf("%s/admin/edit-pages/%d", s.baseURL, id)
}

// Render renders the edit page of product id in the given format
func (s *PreviewService) Render(ctx context.Context, id int, format string) ([]byte, error) {
	switch format {
	case PreviewPDF:
		return s.GeneratePDF(ctx, id)
	case PreviewPNG:
		return s.GeneratePNG(ctx, id)
	default:
		return nil, fmt.Errorf("unsupported preview format %q (use %s or %s)", format, PreviewPDF, PreviewPNG)
	}
}

func (s *PreviewService) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// loadPage waits for the form and its images
func (s *PreviewService) loadPage(id int) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.EmulateViewport(1280, 2000),
		chromedp.Navigate(s.PageURL(id)),
		chromedp.WaitReady("#product-edit-form"),
		chromedp.Evaluate(`
			(function() {
				return Promise.all(Array.from(document.querySelectorAll('img')).map(function (img) {
					return new Promise(function (resolve) {
						if (img.complete) {
							resolve();
							return;
						}
						const timeout = setTimeout(resolve, 5000);
						img.onload = function () { clearTimeout(timeout); resolve(); };
						img.onerror = function () { clearTimeout(timeout); resolve(); };
					});
				}));
			})();
		`, nil),
		chromedp.Sleep(500),
	}
}

// GeneratePDF prints the edit page of product id to PDF
func (s *PreviewService) GeneratePDF(ctx context.Context, id int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	browserCtx, closeBrowser := s.newBrowser(ctx)
	defer closeBrowser()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		s.loadPage(id),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF for product %d: %w", id, err)
	}

	log.Printf("📄 Preview PDF for product %d: %d bytes", id, len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG takes a full-page screenshot of the edit page of product id
func (s *PreviewService) GeneratePNG(ctx context.Context, id int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	browserCtx, closeBrowser := s.newBrowser(ctx)
	defer closeBrowser()

	var pngBuf []byte
	err := chromedp.Run(browserCtx,
		s.loadPage(id),
		// quality 100 keeps the screenshot PNG encoded
		chromedp.FullScreenshot(&pngBuf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG for product %d: %w", id, err)
	}

	log.Printf("📄 Preview PNG for product %d: %d bytes", id, len(pngBuf))
	return pngBuf, nil
}
