package vision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"esg-questionnaire-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubRenderer struct {
	rendered []int
}

func (r *stubRenderer) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	r.rendered = append(r.rendered, page)
	return []byte("png-bytes"), nil
}

type stubProvider struct {
	text string
}

func (p *stubProvider) ExtractText(ctx context.Context, imagePNG []byte, prompt string) (string, error) {
	return p.text, nil
}

func passageFor(path string, page int) *entity.Passage {
	return &entity.Passage{
		Id:         uuid.New(),
		SourceFile: filepath.Base(path),
		SourcePath: &path,
		Page:       &page,
		Kind:       entity.PassageKindText,
	}
}

func TestExtractPagesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	renderer := &stubRenderer{}
	extractor := NewExtractor(renderer, &stubProvider{text: " 1,234.5 tons "}, 0, nopLogger{})

	// two chunks of the same page, one of another
	passages := []*entity.Passage{
		passageFor(path, 2),
		passageFor(path, 2),
		passageFor(path, 0),
	}

	pages := extractor.ExtractPages(context.Background(), passages, "read the KPI")
	require.Len(t, pages, 2)
	assert.Equal(t, "report.pdf:page_3_fullpage", pages[0].Ref)
	assert.Equal(t, "1,234.5 tons", pages[0].Text)
	assert.Equal(t, "report.pdf:page_1_fullpage", pages[1].Ref)
	assert.Equal(t, []int{2, 0}, renderer.rendered)
}

func TestExtractPagesSkipsMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.pdf")

	renderer := &stubRenderer{}
	extractor := NewExtractor(renderer, &stubProvider{text: "42"}, 0, nopLogger{})

	pages := extractor.ExtractPages(context.Background(), []*entity.Passage{passageFor(missing, 0)}, "read")
	assert.Empty(t, pages)
	assert.Empty(t, renderer.rendered)
}

func TestExtractPagesIgnoresUnpagedPassages(t *testing.T) {
	extractor := NewExtractor(&stubRenderer{}, &stubProvider{text: "42"}, 0, nopLogger{})

	pages := extractor.ExtractPages(context.Background(), []*entity.Passage{
		{Id: uuid.New(), SourceFile: "notes.txt"},
	}, "read")
	assert.Empty(t, pages)
}
