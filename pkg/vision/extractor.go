package vision

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"esg-questionnaire-be/internal/entity"
	"esg-questionnaire-be/internal/pkg/logger"
)

// PageText is the model's reading of one rendered page. Ref has the form
// "file.pdf:page_N_fullpage" with a 1-based page number.
type PageText struct {
	Ref  string
	Text string
}

// Extractor runs the full-page vision fallback: group retrieved passages
// by their page of origin, rasterize each page once, and ask a vision
// model to read it.
type Extractor struct {
	renderer PageRenderer
	provider VisionProvider
	timeout  time.Duration
	logger   logger.ILogger
}

func NewExtractor(renderer PageRenderer, provider VisionProvider, timeout time.Duration, logger logger.ILogger) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{
		renderer: renderer,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// ExtractPages reads every distinct (file, page) the passages came from,
// preserving retrieval-rank order. Pages whose file is gone, that fail to
// render, or that exceed the per-page timeout yield no entry.
func (e *Extractor) ExtractPages(ctx context.Context, passages []*entity.Passage, prompt string) []PageText {
	type pageKey struct {
		path string
		page int
	}

	var keys []pageKey
	seen := map[pageKey]bool{}
	for _, p := range passages {
		if p.SourcePath == nil || p.Page == nil {
			continue
		}
		key := pageKey{path: *p.SourcePath, page: *p.Page}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	var out []PageText
	for _, key := range keys {
		if _, err := os.Stat(key.path); err != nil {
			e.logger.Warn("vision.extractor", "source file no longer on disk, skipping page", map[string]interface{}{
				"path": key.path,
				"page": key.page,
			})
			continue
		}

		ref := pageRef(key.path, key.page)
		text := e.extractOnePage(ctx, key.path, key.page, prompt)
		if text == "" {
			continue
		}
		out = append(out, PageText{Ref: ref, Text: text})
	}
	return out
}

func (e *Extractor) extractOnePage(ctx context.Context, path string, page int, prompt string) string {
	pageCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	img, err := e.renderer.RenderPage(pageCtx, path, page)
	if err != nil {
		e.logger.Warn("vision.extractor", "page render failed", map[string]interface{}{
			"path":  path,
			"page":  page,
			"error": err.Error(),
		})
		return ""
	}

	text, err := e.provider.ExtractText(pageCtx, img, prompt)
	if err != nil {
		// timeouts land here too; the page contributes nothing
		e.logger.Warn("vision.extractor", "vision model failed on page", map[string]interface{}{
			"path":  path,
			"page":  page,
			"error": err.Error(),
		})
		return ""
	}
	return strings.TrimSpace(text)
}

func pageRef(path string, page int) string {
	base := path
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		base = path[idx+1:]
	}
	return fmt.Sprintf("%s:page_%d_fullpage", base, page+1)
}
