package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// ErrChromeNotFound is returned when no Chrome or Chromium binary is
// available for PDF conversion.
var ErrChromeNotFound = errors.New("report: chrome not found")

// ChromeOptions configures the headless Chrome PDF conversion.
type ChromeOptions struct {
	// ExecPath is the browser binary. Empty searches PATH and the
	// usual install locations.
	ExecPath string

	// Timeout bounds the whole conversion. Zero uses the default.
	Timeout time.Duration

	// Landscape prints in landscape orientation.
	Landscape bool
}

// FindChrome returns the first Chrome or Chromium binary found.
func FindChrome() (string, error) {
	for _, name := range []string{"chrome", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil && path != "" {
			return path, nil
		}
	}
	for _, path := range []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		`/usr/bin/google-chrome`,
		`/usr/bin/chromium-browser`,
		`/usr/bin/chromium`,
		`/snap/bin/chromium`,
		`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
		`/Applications/Chromium.app/Contents/MacOS/Chromium`,
	} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrChromeNotFound
}

// HTMLToPDF loads the HTML file at htmlPath in headless Chrome and
// prints it to PDF with backgrounds.
func HTMLToPDF(ctx context.Context, htmlPath string, opts ChromeOptions) ([]byte, error) {
	execPath := opts.ExecPath
	if execPath == "" {
		p, err := FindChrome()
		if err != nil {
			return nil, err
		}
		execPath = p
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaults.ChromeTimeoutSeconds * time.Second
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, err
	}
	target := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()
	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(opts.Landscape).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome pdf: %w", err)
	}
	return pdf, nil
}
