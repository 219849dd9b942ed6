// Package markdown converts post bodies to HTML with goldmark.
//
// Post bodies are expanded as templates after conversion, so the converter
// can emit HTML that is itself a valid template source: fenced code is made
// literal and template actions elsewhere survive Markdown escaping verbatim.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Converter renders Markdown to HTML. It is safe for sequential reuse.
type Converter struct {
	md goldmark.Markdown
}

// New returns a converter with GFM and raw HTML passthrough.
func New() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ToHTML converts Markdown to HTML without any template handling.
func (c *Converter) ToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// literal rewrites delimiters so a template pass prints them as text.
var literal = strings.NewReplacer("{{", "{{`{{`}}", "}}", "{{`}}`}}")

var action = regexp.MustCompile(`(?s)\{\{.*?\}\}`)

const placeholderPrefix = "kssgTemplateAction"

// ToTemplate converts Markdown to HTML intended for a second, template pass.
func (c *Converter) ToTemplate(src []byte) (string, error) {
	root := c.md.Parser().Parse(text.NewReader(src))
	ranges := fencedCodeRanges(root)

	var (
		prepared bytes.Buffer
		shielded []string
		pos      int
	)
	shield := func(chunk []byte) {
		prepared.Write(action.ReplaceAllFunc(chunk, func(m []byte) []byte {
			shielded = append(shielded, string(m))
			return []byte(placeholder(len(shielded) - 1))
		}))
	}
	for _, r := range ranges {
		shield(src[pos:r.start])
		prepared.WriteString(literal.Replace(string(src[r.start:r.stop])))
		pos = r.stop
	}
	shield(src[pos:])

	out, err := c.ToHTML(prepared.Bytes())
	if err != nil {
		return "", err
	}
	if len(shielded) == 0 {
		return string(out), nil
	}

	pairs := make([]string, 0, 2*len(shielded))
	for i, s := range shielded {
		pairs = append(pairs, placeholder(i), s)
	}
	return strings.NewReplacer(pairs...).Replace(string(out)), nil
}

func placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i) + "z"
}

type byteRange struct{ start, stop int }

// fencedCodeRanges returns the source ranges of every fenced code block line, in order.
func fencedCodeRanges(root gmast.Node) []byteRange {
	var ranges []byteRange
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		block, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			ranges = append(ranges, byteRange{seg.Start, seg.Stop})
		}
		return gmast.WalkSkipChildren, nil
	})
	return ranges
}
