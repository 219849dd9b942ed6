// Package frontmatter splits `---` delimited YAML front matter from a
// document body and decodes it into ordered metadata.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/kssg/internal/meta"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Split separates YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. CRLF documents are handled.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without trailing newline.
		if trailer := []byte(nl + "---"); bytes.HasSuffix(content, trailer) && len(content)-len(trailer) >= start {
			return content[start : len(content)-len(trailer)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Document is a parsed source document.
type Document struct {
	Fields      meta.Map
	Body        []byte
	Fingerprint string
}

// Parse splits content and decodes its front matter. Documents without
// front matter yield empty Fields.
func Parse(content []byte) (Document, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}

	fields := meta.Map{}
	if had && len(bytes.TrimSpace(fm)) > 0 {
		fields, err = meta.Decode(fm)
		if err != nil {
			return Document{}, fmt.Errorf("parse front matter: %w", err)
		}
	}

	return Document{
		Fields:      fields,
		Body:        body,
		Fingerprint: Fingerprint(fm, body),
	}, nil
}

// Fingerprint returns the mdfp content fingerprint of a document, computed on
// LF-normalized front matter and body so line endings do not change it.
func Fingerprint(frontmatter, body []byte) string {
	fm := strings.TrimSuffix(strings.ReplaceAll(string(frontmatter), "\r\n", "\n"), "\n")
	b := strings.ReplaceAll(string(body), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(fm, b)
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
