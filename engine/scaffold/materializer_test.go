package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a real PNG for content-based classification.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "skeleton")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "config"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "static", "images"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "config", "app.properties"),
		[]byte("app_name={{ .app_name }}\ndb_driver={{ .db_driver }}\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "README.md"),
		[]byte("# {{ .app_name }}\nplain text stays put\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "static", "images", "logo.png"),
		pngHeader,
		0o644,
	))
	return src
}

func newTestMaterializer() *Materializer {
	return NewMaterializer(tplengine.NewEngine())
}

func TestMaterialize(t *testing.T) {
	mapping := props.Map{"app_name": "blog", "db_driver": "sqlite"}

	t.Run("Should render text files and copy binary files verbatim", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "blog")

		report, err := newTestMaterializer().Materialize(t.Context(), src, dst, mapping)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 2, report.Rendered)
		assert.Equal(t, 1, report.Binary)

		rendered, err := os.ReadFile(filepath.Join(dst, "config", "app.properties"))
		require.NoError(t, err)
		assert.Equal(t, "app_name=blog\ndb_driver=sqlite\n", string(rendered))

		binary, err := os.ReadFile(filepath.Join(dst, "static", "images", "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, pngHeader, binary)
	})

	t.Run("Should mirror the source directory structure exactly", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "blog")

		_, err := newTestMaterializer().Materialize(t.Context(), src, dst, mapping)

		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(dst, "config"))
		assert.DirExists(t, filepath.Join(dst, "static", "images"))
		assert.FileExists(t, filepath.Join(dst, "README.md"))
	})

	t.Run("Should fail with CopyError when source does not exist", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "blog")

		_, err := newTestMaterializer().Materialize(t.Context(), filepath.Join(t.TempDir(), "absent"), dst, mapping)

		var copyErr *CopyError
		require.ErrorAs(t, err, &copyErr)
		assert.NoDirExists(t, dst)
	})

	t.Run("Should fail with CopyError when target parent does not exist", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "missing-parent", "blog")

		_, err := newTestMaterializer().Materialize(t.Context(), src, dst, mapping)

		var copyErr *CopyError
		require.ErrorAs(t, err, &copyErr)
		assert.NoDirExists(t, dst)
		assert.NoDirExists(t, filepath.Dir(dst))
	})

	t.Run("Should fail with CopyError when target is a regular file", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(dst, []byte("in the way"), 0o644))

		_, err := newTestMaterializer().Materialize(t.Context(), src, dst, mapping)

		var copyErr *CopyError
		require.ErrorAs(t, err, &copyErr)
	})

	t.Run("Should abort on undefined property naming the failing file", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "blog")

		_, err := newTestMaterializer().Materialize(t.Context(), src, dst, props.Map{"app_name": "blog"})

		require.Error(t, err)
		assert.True(t, tplengine.IsUndefinedProperty(err))
		assert.Contains(t, err.Error(), "app.properties")
	})

	t.Run("Should be idempotent for identical inputs", func(t *testing.T) {
		src := writeFixtureTree(t)
		dst := filepath.Join(t.TempDir(), "blog")
		m := newTestMaterializer()

		_, err := m.Materialize(t.Context(), src, dst, mapping)
		require.NoError(t, err)
		first, err := os.ReadFile(filepath.Join(dst, "config", "app.properties"))
		require.NoError(t, err)

		_, err = m.Materialize(t.Context(), src, dst, mapping)
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(dst, "config", "app.properties"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
