package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bandit", "bandit-report.html")
	require.NoError(t, WriteFileAtomic(path, []byte("<html>v1</html>")))
	require.NoError(t, WriteFileAtomic(path, []byte("<html>v2</html>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in  string
		ext string
	}{
		{"html", "html"},
		{"pdf", "pdf"},
		{"pdf-chrome", "pdf"},
	} {
		f, err := ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.ext, f.Ext())
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}
