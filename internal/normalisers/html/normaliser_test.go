package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestExtract_Title(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "activity heading wins",
			page: `<html><head><title>Tab</title><meta property="og:title" content="Meta"></head>` +
				`<body><h1 id="activity-name">  Heading  </h1></body></html>`,
			want: "Heading",
		},
		{
			name: "og title when heading missing",
			page: `<html><head><title>Tab</title><meta property="og:title" content="Meta"></head><body></body></html>`,
			want: "Meta",
		},
		{
			name: "empty heading falls through",
			page: `<html><head><title>Tab</title></head><body><h1 id="activity-name"> </h1></body></html>`,
			want: "Tab",
		},
		{
			name: "untitled",
			page: `<html><body><p>text</p></body></html>`,
			want: UntitledArticle,
		},
	}

	normaliser := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, err := normaliser.Extract(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, article.Title)
		})
	}
}

func TestExtract_Body(t *testing.T) {
	normaliser := New()

	t.Run("js_content container", func(t *testing.T) {
		page := `<html><body><div id="nav">menu</div><div id="js_content"><p>Article body</p></div></body></html>`
		article, err := normaliser.Extract(page)
		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "Article body")
		assert.NotContains(t, article.ContentHTML, "menu")
	})

	t.Run("rich media container", func(t *testing.T) {
		page := `<html><body><div>skip</div><div class="rich_media_content"><p>Rich</p></div></body></html>`
		article, err := normaliser.Extract(page)
		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "Rich")
		assert.NotContains(t, article.ContentHTML, "skip")
	})

	t.Run("falls back to body", func(t *testing.T) {
		page := `<html><head><title>T</title></head><body><p>Plain page</p></body></html>`
		article, err := normaliser.Extract(page)
		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "Plain page")
		assert.Contains(t, article.ContentHTML, "<body>")
	})
}

func TestConvert(t *testing.T) {
	normaliser := New()

	out, err := normaliser.Convert(`<div><h2>Section</h2><p>Hello <strong>World</strong></p><ul><li>one</li></ul></div>`)
	require.NoError(t, err)
	assert.Contains(t, out, "## Section")
	assert.Contains(t, out, "Hello **World**")
	assert.Contains(t, out, "- one")
}

func TestConvert_Empty(t *testing.T) {
	out, err := New().Convert("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
