package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/iohelper"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bandit.json", `{"results":[{"filename":"a.py"}],"errors":[]}`)
	tree, err := Load(path)
	require.NoError(t, err)

	obj, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Len(t, obj["results"], 1)
}

func TestLoad_Truncated(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bandit.json", `{"results":[{"filename":"a.py"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, finding.ErrMalformed))
	assert.True(t, IsMalformed(err))

	var le *Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.Contains(t, err.Error(), "malformed input")
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, finding.ErrMalformed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	_, err := Load(writeFile(t, "empty.json", ""))
	assert.ErrorIs(t, err, finding.ErrMalformed)
}

func TestLoadLimit_TooLarge(t *testing.T) {
	t.Parallel()

	_, err := LoadLimit(writeFile(t, "big.json", `[1,2,3,4,5,6,7,8,9]`), 4)
	assert.ErrorIs(t, err, finding.ErrMalformed)
	assert.ErrorIs(t, err, iohelper.ErrTooLarge)
}
