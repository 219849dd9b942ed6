package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Hi\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), fm)
	require.Equal(t, []byte("# Hi\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Only\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Only\n"), fm)
	require.Empty(t, body)
}

func TestParse_DecodesFieldsInOrder(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Hello\nshort: Intro\norder: 2\ntags: [a, b]\n---\n# Hi\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"title", "short", "order", "tags"}, doc.Fields.Keys())
	require.Equal(t, 2, doc.Fields.Get("order"))
	require.Equal(t, []byte("# Hi\n"), doc.Body)
	require.NotEmpty(t, doc.Fingerprint)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
}

func TestFingerprint_IgnoresLineEndings(t *testing.T) {
	lf, err := Parse([]byte("---\ntitle: A\n---\nbody\n"))
	require.NoError(t, err)
	crlf, err := Parse([]byte("---\r\ntitle: A\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	require.Equal(t, lf.Fingerprint, crlf.Fingerprint)

	other, err := Parse([]byte("---\ntitle: B\n---\nbody\n"))
	require.NoError(t, err)
	require.NotEqual(t, lf.Fingerprint, other.Fingerprint)
}
