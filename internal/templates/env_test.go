package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return dir
}

func TestRender_PlainTemplate(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"index.html": "<h1>{{.Title}}</h1>",
	})
	env := NewEnvironment(dir, nil)

	out, err := env.Render("index.html", map[string]string{"Title": "Home & Co"})
	require.NoError(t, err)
	require.Equal(t, "<h1>Home &amp; Co</h1>", out)
}

func TestRender_IncludesPartialByName(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"_partial.html": "<nav>{{.Title}}</nav>",
		"index.html":    `{{template "_partial.html" .}}<main>body</main>`,
	})
	env := NewEnvironment(dir, nil)

	out, err := env.Render("index.html", map[string]string{"Title": "Site"})
	require.NoError(t, err)
	require.Equal(t, "<nav>Site</nav><main>body</main>", out)
}

func TestRender_PageOverridesLayoutBlock(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"_base.html": `<title>{{block "title" .}}Default{{end}}</title><body>{{block "content" .}}none{{end}}</body>`,
		"about.html": `{{template "_base.html" .}}{{define "content"}}About us{{end}}`,
	})
	env := NewEnvironment(dir, nil)

	out, err := env.Render("about.html", nil)
	require.NoError(t, err)
	require.Equal(t, "<title>Default</title><body>About us</body>", out)
}

func TestRender_NestedDirectoryNames(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"layouts/_head.html": "<head></head>",
		"blog/index.html":    `{{template "layouts/_head.html"}}blog`,
	})
	env := NewEnvironment(dir, nil)

	out, err := env.Render("blog/index.html", nil)
	require.NoError(t, err)
	require.Equal(t, "<head></head>blog", out)
}

func TestRender_TransitiveReferences(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"_a.html":    `A{{template "_b.html"}}`,
		"_b.html":    `B{{template "_c.html"}}`,
		"_c.html":    `C`,
		"index.html": `{{template "_a.html"}}`,
	})
	env := NewEnvironment(dir, nil)

	out, err := env.Render("index.html", nil)
	require.NoError(t, err)
	require.Equal(t, "ABC", out)
}

func TestRender_MissingTemplate(t *testing.T) {
	env := NewEnvironment(t.TempDir(), nil)

	_, err := env.Render("nope.html", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTemplateNotFound))
}

func TestRender_MissingReferencedTemplateFailsAtExecute(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"index.html": `{{template "_missing.html"}}`,
	})
	env := NewEnvironment(dir, nil)

	_, err := env.Render("index.html", nil)
	require.ErrorIs(t, err, ErrTemplate)
	require.Contains(t, err.Error(), "_missing.html")
}

func TestRender_SyntaxError(t *testing.T) {
	dir := writeSources(t, map[string]string{"bad.html": "{{if}}"})
	env := NewEnvironment(dir, nil)

	_, err := env.Render("bad.html", nil)
	require.ErrorIs(t, err, ErrTemplate)
	require.Contains(t, err.Error(), "parse template bad.html")
}

func TestSource_RejectsEscapingNames(t *testing.T) {
	env := NewEnvironment(t.TempDir(), nil)
	for _, name := range []string{"../secret", "/etc/passwd", "a/../../b"} {
		_, err := env.Source(name)
		require.ErrorIs(t, err, ErrTemplateNotFound, name)
	}
}

func TestFuncs(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"f.html": `{{absURL "/x/"}}|{{dateFormat "2006-01-02" .When}}|{{markdownify "*hi*"}}|{{json .Tags}}`,
	})
	env := NewEnvironment(dir, Funcs(FuncOptions{
		AbsURL:   func(s string) string { return "https://example.com" + s },
		Markdown: func(b []byte) ([]byte, error) { return []byte("<em>hi</em>"), nil },
	}))

	out, err := env.Render("f.html", map[string]any{
		"When": time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		"Tags": []string{"go"},
	})
	require.NoError(t, err)
	require.Equal(t, `https://example.com/x/|2024-01-05|<em>hi</em>|[&#34;go&#34;]`, out)
}
