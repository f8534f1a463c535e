package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skelter-dev/skelter/engine/schema"
	"github.com/skelter-dev/skelter/pkg/props"
	"github.com/skelter-dev/skelter/pkg/tplengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	info *schema.ModelInfo
	err  error
}

func (p *staticProvider) ModelInfo(_ context.Context, _ string) (*schema.ModelInfo, error) {
	return p.info, p.err
}

func postsProvider() *staticProvider {
	return &staticProvider{info: &schema.ModelInfo{
		Name: "posts",
		Columns: []schema.ColumnInfo{
			{Name: "Id", AutoIncrement: true},
			{Name: "Title", Length: 100},
			{Name: "Description", Length: 255},
			{Name: "Created_At", Audited: true},
		},
	}}
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "view.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewViewGenerator(t *testing.T) {
	t.Run("Should reject unknown kinds", func(t *testing.T) {
		_, err := NewViewGenerator(Kind("delete"), postsProvider(), tplengine.NewEngine(), 255)
		assert.Error(t, err)
	})

	t.Run("Should reject nil provider", func(t *testing.T) {
		_, err := NewViewGenerator(KindAdd, nil, tplengine.NewEngine(), 255)
		assert.Error(t, err)
	})

	t.Run("Should accept every declared kind", func(t *testing.T) {
		for _, kind := range Kinds() {
			_, err := NewViewGenerator(kind, postsProvider(), tplengine.NewEngine(), 255)
			assert.NoError(t, err, "kind %q", kind)
		}
	})
}

func TestViewGenerator_Generate(t *testing.T) {
	t.Run("Should render filtered columns with long-text handling", func(t *testing.T) {
		tmpl := writeTemplate(t,
			"{{ .action }}:{{ range .columns }}"+
				"{{ if .isLongText }}<textarea name={{ .nameLower }}>"+
				"{{ else }}<input name={{ .nameLower }}>{{ end }}{{ end }}")
		gen, err := NewViewGenerator(KindAdd, postsProvider(), tplengine.NewEngine(), 255)
		require.NoError(t, err)

		out, err := gen.Generate(t.Context(), "posts", tmpl, nil)

		require.NoError(t, err)
		assert.Equal(t, "add:<input name=title><textarea name=description>", out)
	})

	t.Run("Should let generator properties win over base on collision", func(t *testing.T) {
		tmpl := writeTemplate(t, "{{ .action }}/{{ .app_name }}")
		gen, err := NewViewGenerator(KindEdit, postsProvider(), tplengine.NewEngine(), 255)
		require.NoError(t, err)

		out, err := gen.Generate(t.Context(), "posts", tmpl, props.Map{
			"app_name": "blog",
			"action":   "stale",
		})

		require.NoError(t, err)
		assert.Equal(t, "edit/blog", out)
	})

	t.Run("Should expose base properties inside column iteration", func(t *testing.T) {
		tmpl := writeTemplate(t, "{{ range .columns }}{{ .app_name }}.{{ .nameLower }};{{ end }}")
		gen, err := NewViewGenerator(KindList, postsProvider(), tplengine.NewEngine(), 255)
		require.NoError(t, err)

		out, err := gen.Generate(t.Context(), "posts", tmpl, props.Map{"app_name": "blog"})

		require.NoError(t, err)
		assert.Equal(t, "blog.title;blog.description;", out)
	})

	t.Run("Should propagate provider failures unchanged", func(t *testing.T) {
		providerErr := errors.New("metadata unavailable")
		gen, err := NewViewGenerator(KindShow, &staticProvider{err: providerErr}, tplengine.NewEngine(), 255)
		require.NoError(t, err)

		_, err = gen.Generate(t.Context(), "posts", writeTemplate(t, "x"), nil)

		assert.ErrorIs(t, err, providerErr)
	})

	t.Run("Should fail on undefined template property", func(t *testing.T) {
		tmpl := writeTemplate(t, "{{ .not_defined }}")
		gen, err := NewViewGenerator(KindAdd, postsProvider(), tplengine.NewEngine(), 255)
		require.NoError(t, err)

		_, err = gen.Generate(t.Context(), "posts", tmpl, nil)

		assert.True(t, tplengine.IsUndefinedProperty(err))
	})
}

func TestControllerGenerator_Generate(t *testing.T) {
	t.Run("Should write the rendered controller to the output path", func(t *testing.T) {
		tmpl := writeTemplate(t, "package {{ .package_prefix }}\n")
		out := filepath.Join(t.TempDir(), "app", "controllers", "posts.go")
		gen := NewControllerGenerator(tplengine.NewEngine())

		err := gen.Generate(t.Context(), tmpl, out, props.Map{"package_prefix": "blog"})

		require.NoError(t, err)
		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "package blog\n", string(content))
	})
}
