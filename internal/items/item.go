// Package items classifies source files into typed items and renders them.
//
// Classification happens once per build, before any rendering, and fails
// fast when a post or structured page lacks required metadata. Items are
// never mutated after Classify returns.
//
// Post bodies are expanded as html/template sources after Markdown
// conversion, so HTML comments written in a post do not reach the output.
package items

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/meta"
	"git.home.luguber.info/inful/kssg/internal/postname"
	"git.home.luguber.info/inful/kssg/internal/site"
)

var (
	ErrMissingTitle    = errors.New(`missing required field "title"`)
	ErrMissingShort    = errors.New(`missing required field "short"`)
	ErrMissingTemplate = errors.New(`missing required field "template"`)
	ErrMissingMetadata = errors.New(`missing required section "metadata"`)
	ErrInvalidField    = errors.New("invalid field value")
)

// Item is a classified source file.
type Item struct {
	Kind Kind
	// Rel is the slash-separated path relative to the source directory.
	Rel string
	// Input and Output are file-system paths. Output is empty for Ignore.
	Input  string
	Output string
	// Link is the public address of the output, empty for Ignore.
	Link string

	// Post is set for Post items.
	Post *PostMeta
	// Page is set for StructuredPage items.
	Page *PageMeta

	title string
}

// PostMeta is the classification-time data of a post.
type PostMeta struct {
	Title       string
	Short       string
	Order       int
	FrontMatter meta.Map
	Fingerprint string
	Name        postname.Name
}

// PageMeta is the classification-time data of a structured page.
type PageMeta struct {
	Template string
	Title    string
	Type     string
	Metadata meta.Map
	Data     meta.Map
}

// Classify assigns rel to exactly one variant. The first matching rule wins:
// private basename, post directory, template or structured page extension,
// static.
func Classify(rel string, cfg *config.Config) (*Item, error) {
	it := &Item{
		Rel:   rel,
		Input: filepath.Join(cfg.SrcPath, filepath.FromSlash(rel)),
	}

	base := path.Base(rel)
	ext := strings.ToLower(path.Ext(base))

	switch {
	case cfg.PrivatePrefix != "" && strings.HasPrefix(base, cfg.PrivatePrefix):
		it.Kind = Ignore
		return it, nil

	case inDir(rel, cfg.PostDir):
		pm, link, ok, err := classifyPost(it.Input, strings.TrimSuffix(base, path.Ext(base)), ext, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		if !ok {
			it.Kind = Ignore
			return it, nil
		}
		it.Kind = Post
		it.Post = pm
		it.Link = link
		it.Output = filepath.Join(cfg.OutputPath, filepath.FromSlash(strings.TrimPrefix(link, "/")), cfg.IndexFilename)
		return it, nil

	case slices.Contains(cfg.TemplateExtensions, ext):
		it.Kind = Template
		it.setOutput(rel, cfg)
		it.title = deriveTitle(rel, cfg)
		return it, nil

	case slices.Contains(cfg.StructuredPageExtensions, ext):
		pm, err := classifyStructured(it.Input)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		it.Kind = StructuredPage
		it.Page = pm
		it.setOutput(strings.TrimSuffix(rel, path.Ext(rel))+".html", cfg)
		return it, nil

	default:
		it.Kind = Static
		it.setOutput(rel, cfg)
		return it, nil
	}
}

// setOutput derives Output and Link from the output-relative path.
func (it *Item) setOutput(outRel string, cfg *config.Config) {
	it.Output = filepath.Join(cfg.OutputPath, filepath.FromSlash(outRel))
	it.Link = linkFor(outRel, cfg.IndexFilename)
}

// linkFor roots outRel at "/" and collapses an index file to its directory.
func linkFor(outRel, indexFilename string) string {
	link := "/" + outRel
	if path.Base(outRel) == indexFilename {
		return path.Dir(link)
	}
	return link
}

func inDir(rel, dir string) bool {
	return strings.HasPrefix(rel, dir+"/")
}

// Summary returns the context-facing projection of the item, or nil when the
// item is not a page.
func (it *Item) Summary() *site.Page {
	switch it.Kind {
	case Template:
		return &site.Page{
			Link:   it.Link,
			Title:  it.title,
			Type:   site.TypePage,
			Source: it.Rel,
		}
	case StructuredPage:
		return &site.Page{
			Link:     it.Link,
			Title:    it.Page.Title,
			Type:     it.Page.Type,
			Metadata: it.Page.Metadata,
			Source:   it.Rel,
		}
	case Post:
		return &site.Page{
			Link:        it.Link,
			Title:       it.Post.Title,
			Short:       it.Post.Short,
			Date:        it.Post.Name.Date(),
			Order:       it.Post.Order,
			Type:        site.TypePost,
			Metadata:    it.Post.FrontMatter,
			Source:      it.Rel,
			Fingerprint: it.Post.Fingerprint,
		}
	default:
		return nil
	}
}
