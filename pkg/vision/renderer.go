package vision

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// PageRenderer rasterizes one page of a document to a PNG image.
type PageRenderer interface {
	RenderPage(ctx context.Context, path string, page int) ([]byte, error)
}

// ChromeRenderer renders PDF pages with headless Chrome, relying on the
// built-in PDF viewer and its #page= fragment.
type ChromeRenderer struct{}

var _ PageRenderer = &ChromeRenderer{}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{}
}

func (r *ChromeRenderer) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	url := fmt.Sprintf("file://%s#page=%d", path, page+1)

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 1800),
		chromedp.Navigate(url),
		chromedp.Sleep(1500*time.Millisecond), // let the PDF viewer paint
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", page+1, path, err)
	}
	return buf, nil
}
