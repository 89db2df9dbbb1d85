// Package browser displays or captures rendered chart pages with Chrome via chromedp.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jgoulah/covidplot/internal/logger"
)

// Chart animations finish well within this
const settleDelay = 1500 * time.Millisecond

// FileURL turns a local path into a file:// URL Chrome can open
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func allocatorOptions(headless bool, width, height int) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if width > 0 && height > 0 {
		opts = append(opts, chromedp.WindowSize(width, height))
	}
	return opts
}

// Show opens a visible browser window on pageURL and keeps it open until wait returns
func Show(ctx context.Context, pageURL string, wait func() error) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(false, 0, 0)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	logger.Debugf(ctx, "opening %s", pageURL)
	if err := chromedp.Run(browserCtx, chromedp.Navigate(pageURL)); err != nil {
		return fmt.Errorf("navigating to chart: %w", err)
	}

	if err := wait(); err != nil {
		return err
	}
	return nil
}

// Screenshot renders pageURL headless at width x height and returns a PNG
func Screenshot(ctx context.Context, pageURL string, width, height int) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(true, width, height)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		// quality 100 produces a PNG
		chromedp.FullScreenshot(&buf, 100),
	); err != nil {
		return nil, fmt.Errorf("capturing chart: %w", err)
	}

	logger.Debugf(ctx, "captured %d byte screenshot of %s", len(buf), pageURL)
	return buf, nil
}
