package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	return root
}

func TestFindFilesByExtension(t *testing.T) {
	root := writeTree(t, "b.yaml", "a.YML", "sub/c.yaml", "notes.txt")

	files, err := FindFilesByExtension(root, ".yaml", ".yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.YML"),
		filepath.Join(root, "b.yaml"),
		filepath.Join(root, "sub", "c.yaml"),
	}, files)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}

func TestFindFiles(t *testing.T) {
	root := writeTree(t, "rules/10_coords.hcl", "rules/20_data.yaml", "extra.yaml", "readme.md")

	t.Run("keeps argument order and de-duplicates", func(t *testing.T) {
		files, err := FindFiles(
			[]string{filepath.Join(root, "extra.yaml"), filepath.Join(root, "rules"), filepath.Join(root, "extra.yaml")},
			".hcl", ".yaml",
		)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "extra.yaml"),
			filepath.Join(root, "rules", "10_coords.hcl"),
			filepath.Join(root, "rules", "20_data.yaml"),
		}, files)
	})

	t.Run("explicit file with wrong extension", func(t *testing.T) {
		_, err := FindFiles([]string{filepath.Join(root, "readme.md")}, ".yaml")
		require.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFiles([]string{filepath.Join(root, "nope")}, ".yaml")
		require.Error(t, err)
	})
}
