package io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	require.NoError(t, WriteStringToFile(path, "hello"))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestWriteStructToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obj.json")
	require.NoError(t, WriteStructToFile(path, map[string]int{"a": 1}))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(got))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
