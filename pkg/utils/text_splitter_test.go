package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 500, 50)
	assert.Equal(t, []string{"short"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 8) + strings.Repeat("b", 8)
	chunks := SplitText(text, 10, 4)

	assert.Equal(t, []string{
		"aaaaaaaabb",
		"aabbbbbbbb",
	}, chunks)
}

func TestSplitTextMultibyte(t *testing.T) {
	// chunk boundaries must never split a rune
	text := strings.Repeat("范", 12)
	chunks := SplitText(text, 5, 1)

	for _, chunk := range chunks {
		for _, r := range chunk {
			assert.Equal(t, '范', r)
		}
	}
	assert.Equal(t, strings.Repeat("范", 5), chunks[0])
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	chunks := SplitText(strings.Repeat("x", 10), 3, 5)
	// overlap falls back to disjoint chunks instead of looping forever
	assert.Equal(t, []string{"xxx", "xxx", "xxx", "x"}, chunks)
}
