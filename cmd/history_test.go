package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	content := "{\"a\":1}\n\n  \n{\"b\":2}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	history, err := readHistory(path)
	require.NoError(t, err)
	require.Len(t, history, 2, "blank lines are skipped")
	assert.Equal(t, `{"a":1}`, string(history[0]))
	assert.Equal(t, `{"b":2}`, string(history[1]))
}

func TestReadHistory_MissingFile(t *testing.T) {
	_, err := readHistory(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}
