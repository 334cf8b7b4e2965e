package lift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "#sc", opts.SupercombinatorHint)
	assert.True(t, opts.DeterministicOrder)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supercombinator_hint: lifted\ndeterministic_order: false\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "lifted", opts.SupercombinatorHint)
	assert.False(t, opts.DeterministicOrder)
}

func TestLoadOptionsDefaultsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deterministic_order: false\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "#sc", opts.SupercombinatorHint)
	assert.False(t, opts.DeterministicOrder)
}

func TestLoadOptionsRejectsEmptyHint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("supercombinator_hint: \"\"\n"), 0o644))

	_, err := LoadOptions(path)
	assert.Error(t, err)
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
