package verify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"campus-map/utils"
)

// Browser opens a rendered map in headless Chrome to confirm it draws.
type Browser struct {
	chromeBin string
	logger    *utils.Logger
	retry     *utils.RetryConfig
	settle    time.Duration
}

// New creates a Browser. chromeBin may be empty to search the usual locations.
func New(chromeBin string, maxRetries int, logger *utils.Logger) *Browser {
	return &Browser{
		chromeBin: chromeBin,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		settle: 3 * time.Second,
	}
}

// CountMarkers loads the artifact at path and returns the number of marker
// icons Leaflet placed on the page.
func (b *Browser) CountMarkers(ctx context.Context, path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("verify: resolve %q: %w", path, err)
	}

	chromeBin := FindChromeBinary(b.chromeBin)
	if chromeBin == "" {
		return 0, fmt.Errorf("verify: no Chrome or Chromium binary found")
	}
	b.logger.Debug("[verify] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.ExecPath(chromeBin),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var count int
	err = b.retry.Do(browserCtx, "verify-render", func(ctx context.Context) error {
		tabCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		return chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+filepath.ToSlash(abs)),
			chromedp.WaitReady("#map", chromedp.ByQuery),
			chromedp.Sleep(b.settle),
			chromedp.Evaluate(`document.querySelectorAll('.leaflet-marker-icon').length`, &count),
		)
	})
	if err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}
	return count, nil
}

// FindChromeBinary locates a Chrome/Chromium binary, preferring explicit.
func FindChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}
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
