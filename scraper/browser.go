package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"realestate-aggregator/config"
	"realestate-aggregator/utils"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// pageSettle gives client-side rendering time to populate result cards.
	pageSettle = 3 * time.Second
)

// Browser is a headless Chrome instance shared by all sources. Each fetch
// runs in its own tab.
type Browser struct {
	logger      *utils.Logger
	pageTimeout time.Duration

	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
}

var _ HTMLFetcher = (*Browser)(nil)

// NewBrowser launches Chrome with the configured binary.
func NewBrowser(cfg *config.Config, logger *utils.Logger) (*Browser, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = FindChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// start the browser now so launch failures surface here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	return &Browser{
		logger:      logger,
		pageTimeout: time.Duration(cfg.PageTimeoutSec) * time.Second,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancelCtx:   cancelCtx,
	}, nil
}

// FetchHTML opens pageURL in a new tab and returns the rendered document.
func (b *Browser) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.pageTimeout)
	defer cancelTimeout()

	// the tab context derives from the browser, so tie it to the caller too
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(pageSettle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser: load %s: %w", pageURL, err)
	}

	b.logger.Debug("[browser] Loaded %s (%d bytes)", pageURL, len(html))
	return html, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancelCtx()
	b.cancelAlloc()
}

// FindChromeBinary looks for a Chrome or Chromium executable, honouring
// CHROME_BIN first. It returns "" to let chromedp use its own lookup.
func FindChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
