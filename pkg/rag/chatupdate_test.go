package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChatUpdate(t *testing.T) {
	values, ok := ParseChatUpdate("```json\n{\"scope1\": 500, \"scope2\": \"1,200 tons\"}\n```")
	assert.True(t, ok)
	assert.Equal(t, 500.0, values["scope1"])
	assert.Equal(t, 1200.0, values["scope2"])
}

func TestParseChatUpdateSingleQuotes(t *testing.T) {
	values, ok := ParseChatUpdate("{'scope1': 500}")
	assert.True(t, ok)
	assert.Equal(t, 500.0, values["scope1"])
}

func TestParseChatUpdateSynonymKeys(t *testing.T) {
	values, ok := ParseChatUpdate(`{"scope one": 500, "总能耗": 9000, "unrelated": 1}`)
	assert.True(t, ok)
	assert.Equal(t, 500.0, values["scope1"])
	assert.Equal(t, 9000.0, values["energy_total"])
	_, exists := values["unrelated"]
	assert.False(t, exists)
}

func TestParseChatUpdateGarbage(t *testing.T) {
	_, ok := ParseChatUpdate("I could not find any values, sorry.")
	assert.False(t, ok)

	_, ok = ParseChatUpdate("{scope1: broken json")
	assert.False(t, ok)
}

func TestSanitizeKPIValues(t *testing.T) {
	out := SanitizeKPIValues(map[string]interface{}{
		"scope1":          "500",
		"scope2":          nil,
		"renewable ratio": "n/a",
		"energy_total":    float64(1234),
		"bogus":           42,
	})

	assert.Equal(t, 500.0, out["scope1"])
	assert.Nil(t, out["scope2"])
	assert.Nil(t, out["renewable_ratio"])
	assert.Equal(t, 1234.0, out["energy_total"])
	_, exists := out["bogus"]
	assert.False(t, exists)
}
