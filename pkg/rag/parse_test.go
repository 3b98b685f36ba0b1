package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   float64
		wantOk bool
	}{
		{"plain number", "1234.5", 1234.5, true},
		{"thousands separator", "The total is 1,234.5 tons", 1234.5, true},
		{"percent sign", "23.4%", 23.4, true},
		{"negative", "-42", -42, true},
		{"units after", "500 MWh", 500, true},
		{"no number", "unknown", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFloat(tt.answer)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	got, ok := ParseText(`  "Net zero by 2040"  `)
	assert.True(t, ok)
	assert.Equal(t, "Net zero by 2040", got)

	_, ok = ParseText("Unknown")
	assert.False(t, ok)

	_, ok = ParseText("   ")
	assert.False(t, ok)
}

func TestParseList(t *testing.T) {
	options := []string{"solar", "wind", "hydro"}

	got := ParseList(`Based on the text: ["solar", "wind", "coal"]`, options)
	assert.Equal(t, []string{"solar", "wind"}, got)

	// comma fallback when the array is not valid JSON
	got = ParseList("solar, hydro", options)
	assert.Equal(t, []string{"solar", "hydro"}, got)

	got = ParseList("[]", options)
	assert.Empty(t, got)
}
