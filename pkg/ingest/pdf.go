package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadPDF extracts tables first (best effort), then per-page text. A page
// that fails text extraction is skipped; if no page yields text at all, a
// whole-file extraction is attempted as a fallback.
func LoadPDF(path string) (*Result, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	res := &Result{}
	numPages := reader.NumPage()

	// Pass 1: best-effort table rows
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		tableText, err := extractPageTable(page)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("table extraction failed on page %d: %v", i, err))
			continue
		}
		if tableText == "" {
			continue
		}
		pageIdx := i - 1
		res.Units = append(res.Units, newUnit(path, tableText, KindTable, &pageIdx))
	}

	// Pass 2: per-page plain text
	pagesWithText := 0
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("text extraction failed on page %d: %v", i, err))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pagesWithText++
		pageIdx := i - 1
		res.Units = append(res.Units, newUnit(path, text, KindText, &pageIdx))
	}

	// Fallback: whole-file text when no single page produced any
	if pagesWithText == 0 {
		whole, err := reader.GetPlainText()
		if err == nil {
			var sb strings.Builder
			buf := make([]byte, 4096)
			for {
				n, readErr := whole.Read(buf)
				if n > 0 {
					sb.Write(buf[:n])
				}
				if readErr != nil {
					break
				}
			}
			if text := strings.TrimSpace(sb.String()); text != "" {
				res.Units = append(res.Units, newUnit(path, text, KindText, nil))
			}
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("whole-file text extraction failed: %v", err))
		}
	}

	return res, nil
}

// extractPageTable reconstructs row/column structure from positioned text.
// Only pages where at least one row splits into multiple cells count as
// tables; pure prose pages return "".
func extractPageTable(page pdf.Page) (tableText string, err error) {
	// GetTextByRow panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row extraction panic: %v", r)
		}
	}()

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	var lines []string
	multiCell := false
	for _, row := range rows {
		texts := append([]pdf.Text(nil), row.Content...)
		sort.SliceStable(texts, func(i, j int) bool {
			return texts[i].X < texts[j].X
		})

		var cells []string
		var current strings.Builder
		lastEnd := -1.0
		for _, t := range texts {
			if lastEnd >= 0 && t.X-lastEnd > 12 { // gap wide enough to be a column break
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			}
			current.WriteString(t.S)
			lastEnd = t.X + t.W
		}
		if current.Len() > 0 {
			cells = append(cells, strings.TrimSpace(current.String()))
		}
		if len(cells) > 1 {
			multiCell = true
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}

	if !multiCell {
		return "", nil
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
