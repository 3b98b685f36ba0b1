package rag

import (
	"encoding/json"
	"strings"

	"esg-questionnaire-be/internal/constant"
)

// kpiSynonyms remaps model output keys to canonical field keys. Bilingual
// because chat input mixes English and Chinese.
var kpiSynonyms = map[string]string{
	"scope 1":             "scope1",
	"scope one":           "scope1",
	"范围一":                 "scope1",
	"范围1":                 "scope1",
	"scope 2":             "scope2",
	"scope two":           "scope2",
	"范围二":                 "scope2",
	"范围2":                 "scope2",
	"scope 3":             "scope3",
	"scope three":         "scope3",
	"范围三":                 "scope3",
	"范围3":                 "scope3",
	"total energy":        "energy_total",
	"energy consumption":  "energy_total",
	"总能耗":                 "energy_total",
	"renewable ratio":     "renewable_ratio",
	"renewable share":     "renewable_ratio",
	"可再生能源比例":             "renewable_ratio",
	"hazardous":           "hazardous_waste",
	"危险废弃物":               "hazardous_waste",
	"non-hazardous":       "nonhazardous_waste",
	"nonhazardous":        "nonhazardous_waste",
	"非危险废弃物":              "nonhazardous_waste",
	"recycled":            "recycled_waste",
	"回收废弃物":               "recycled_waste",
}

// ParseChatUpdate turns a model reply into KPI value updates. The reply is
// expected to be a flat JSON object; single quotes are normalized first.
// A reply that still fails to parse yields (nil, false) so the caller can
// treat the update as a no-op.
func ParseChatUpdate(reply string) (map[string]interface{}, bool) {
	cleaned := strings.TrimSpace(reply)

	// strip markdown fences models like to add
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	cleaned = cleaned[start : end+1]

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		// models trained on Python emit single-quoted pseudo-JSON
		normalized := strings.ReplaceAll(cleaned, "'", `"`)
		if err := json.Unmarshal([]byte(normalized), &raw); err != nil {
			return nil, false
		}
	}

	return SanitizeKPIValues(raw), true
}

// SanitizeKPIValues remaps synonym keys to canonical ones, drops unknown
// fields, and coerces every value to float-or-null.
func SanitizeKPIValues(raw map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for key, value := range raw {
		canonical := canonicalKPIKey(key)
		if canonical == "" {
			continue
		}
		out[canonical] = floatOrNull(value)
	}
	return out
}

func canonicalKPIKey(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if constant.IsKPIField(normalized) {
		return normalized
	}
	if canonical, ok := kpiSynonyms[normalized]; ok {
		return canonical
	}
	return ""
}

func floatOrNull(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, ok := ParseFloat(v); ok {
			return f
		}
		return nil
	case nil:
		return nil
	default:
		return nil
	}
}
