package preview

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWith(t *testing.T, path string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	injectScript(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestInjectScript_BeforeBody(t *testing.T) {
	rec := serveWith(t, "/about.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", "38")
		_, _ = w.Write([]byte("<html><body><p>hi</p>"))
		_, _ = w.Write([]byte("</body></html>"))
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html><body><p>hi</p>"+scriptTag+"</body></html>", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Length"))
}

func TestInjectScript_DirectoryIndex(t *testing.T) {
	rec := serveWith(t, "/2024/01/05/hello/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<BODY>post</BODY>"))
	})
	assert.Equal(t, "<BODY>post"+scriptTag+"</BODY>", rec.Body.String())
}

func TestInjectScript_AppendsWithoutBody(t *testing.T) {
	rec := serveWith(t, "/fragment.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<p>fragment</p>"))
	})
	assert.Equal(t, "<p>fragment</p>"+scriptTag, rec.Body.String())
}

func TestInjectScript_SkipsAssets(t *testing.T) {
	rec := serveWith(t, "/css/site.css", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("body{}</body>"))
	})
	assert.Equal(t, "body{}</body>", rec.Body.String())
}

func TestInjectScript_SkipsNonHTMLContentType(t *testing.T) {
	rec := serveWith(t, "/data.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"a":"</body>"}`))
	})
	assert.Equal(t, `{"a":"</body>"}`, rec.Body.String())
}

func TestInjectScript_PreservesErrorStatus(t *testing.T) {
	rec := serveWith(t, "/missing.html", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "404 page not found", http.StatusNotFound)
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), scriptTag)
}

func TestInjectScript_LargeBodyPassesThrough(t *testing.T) {
	big := strings.Repeat("x", maxInjectSize) + "</body>"
	rec := serveWith(t, "/big.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(big[:100]))
		_, _ = w.Write([]byte(big[100:]))
	})
	assert.Equal(t, big, rec.Body.String())
}

func TestInjectScript_EmptyResponseKeepsStatus(t *testing.T) {
	rec := serveWith(t, "/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestInjectBeforeBody_NonASCIIText(t *testing.T) {
	text := strings.Repeat("İ", 40)
	html := "<html><Body><p>" + text + "</p></Body></html>"

	got := injectBeforeBody(html)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "<html><Body><p>"+text+"</p>"+scriptTag+"</Body></html>", got)
}
