package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Scope 1: 100 tons\r\n\r\n  Scope 2: 200 tons  \n"), 0o644))

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Units, 1)

	unit := result.Units[0]
	assert.Equal(t, "Scope 1: 100 tons\nScope 2: 200 tons", unit.Content)
	assert.Equal(t, "notes.txt", unit.SourceFile)
	assert.Equal(t, KindText, unit.Kind)
	assert.Nil(t, unit.Page)
	require.NotNil(t, unit.SourcePath)
	assert.Equal(t, path, *unit.SourcePath)
}

func TestLoadTextWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.txt")
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), 0o644))

	result, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Units[0].Content)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
