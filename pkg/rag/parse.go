package rag

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var floatPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseFloat pulls the first signed decimal out of a model answer.
// Thousands separators, percent signs and units are tolerated.
func ParseFloat(answer string) (float64, bool) {
	cleaned := strings.ReplaceAll(answer, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "%", "")
	match := floatPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseText accepts a model answer as a text candidate. "unknown" replies
// and empty strings are rejected.
func ParseText(answer string) (string, bool) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.Trim(cleaned, `"'`)
	if cleaned == "" || strings.EqualFold(cleaned, "unknown") {
		return "", false
	}
	return cleaned, true
}

// ParseList reads a JSON array out of a model answer, falling back to a
// comma split, and filters the items to the allowed options.
func ParseList(answer string, options []string) []string {
	cleaned := strings.TrimSpace(answer)

	var items []string
	// models sometimes wrap the array in prose, find the bracketed part
	if start, end := strings.Index(cleaned, "["), strings.LastIndex(cleaned, "]"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
			items = nil
		}
	}
	if items == nil {
		stripped := strings.Trim(cleaned, "[]")
		for _, part := range strings.Split(stripped, ",") {
			items = append(items, part)
		}
	}

	allowed := map[string]bool{}
	for _, opt := range options {
		allowed[opt] = true
	}

	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		item = strings.Trim(item, `"'`)
		if item == "" {
			continue
		}
		if len(options) > 0 && !allowed[item] {
			continue
		}
		out = append(out, item)
	}
	return out
}
