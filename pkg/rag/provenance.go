package rag

import (
	"fmt"

	"esg-questionnaire-be/internal/entity"
)

// Provenance renders a human-readable source reference for a passage.
// Pages are shown 1-based.
func Provenance(p *entity.Passage) string {
	if p == nil || p.SourceFile == "" {
		return "unknown source"
	}
	if p.Page != nil {
		return fmt.Sprintf("%s:%d", p.SourceFile, *p.Page+1)
	}
	return p.SourceFile
}
