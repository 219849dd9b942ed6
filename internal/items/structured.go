package items

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/kssg/internal/meta"
	"git.home.luguber.info/inful/kssg/internal/site"
)

// classifyStructured loads a structured page document and validates the
// fields every such page must carry. Documents are JSON unless the file has
// a .yaml or .yml extension.
func classifyStructured(input string) (*PageMeta, error) {
	// #nosec G304 -- input comes from walking the source directory.
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read structured page: %w", err)
	}
	decode := meta.DecodeJSON
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		decode = meta.Decode
	}
	doc, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("parse structured page: %w", err)
	}

	tmpl, ok := doc.String("template")
	if !ok || tmpl == "" {
		return nil, ErrMissingTemplate
	}
	md, ok := doc.Map("metadata")
	if !ok {
		return nil, ErrMissingMetadata
	}
	title, ok := scalarString(md.Get("title"))
	if !ok || title == "" {
		return nil, ErrMissingTitle
	}

	typ := site.TypePage
	if md.Has("type") {
		typ, ok = md.String("type")
		if !ok || typ == "" {
			return nil, fmt.Errorf("%w: metadata.type must be a non-empty string", ErrInvalidField)
		}
	}

	var data meta.Map
	if v := doc.Get("data"); v != nil {
		data, ok = v.(meta.Map)
		if !ok {
			return nil, fmt.Errorf("%w: data must be a mapping", ErrInvalidField)
		}
	}

	return &PageMeta{
		Template: tmpl,
		Title:    title,
		Type:     typ,
		Metadata: md,
		Data:     data,
	}, nil
}
