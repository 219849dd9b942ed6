// Package site holds the data shared by every render of a build: site
// metadata plus the summaries of all pages and posts.
package site

import (
	"fmt"
	"html/template"
	"net/url"
	"time"

	"git.home.luguber.info/inful/kssg/internal/meta"
)

// Page types assigned during classification.
const (
	TypePost = "post"
	TypePage = "page"
)

// Site is the site-wide metadata.
type Site struct {
	Title   string
	BaseURL string
	// Revision is the source tree commit, empty outside a git repository.
	Revision      string
	ShortRevision string
	// Branch is empty on a detached HEAD.
	Branch string

	base *url.URL
}

// New validates baseURL and returns the site metadata.
func New(title, baseURL, revision string) (Site, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Site{}, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return Site{Title: title, BaseURL: baseURL, Revision: revision, base: u}, nil
}

// URL resolves ref against the base URL with standard reference resolution:
// absolute URLs pass through, relative ones are joined.
func (s Site) URL(ref string) string {
	r, err := url.Parse(ref)
	if err != nil || s.base == nil {
		return ref
	}
	return s.base.ResolveReference(r).String()
}

// Page is the read-only summary of a page or post exposed to templates.
type Page struct {
	Link        string
	Title       string
	Short       string
	Date        time.Time
	Order       int
	Type        string
	Metadata    meta.Map
	Source      string
	Fingerprint string
}

// IsPost reports whether the summary belongs to a post.
func (p Page) IsPost() bool { return p.Type == TypePost }

// Context is the shared rendering data of one build.
type Context struct {
	Site Site
	// Pages holds non-post summaries in discovery order.
	Pages PageList
	// Posts holds post summaries, newest first.
	Posts PageList
	// All holds Pages followed by Posts.
	All PageList
}

// NewContext splits summaries into pages and posts and sorts the posts.
func NewContext(s Site, summaries []Page) *Context {
	var pages, posts PageList
	for _, p := range summaries {
		if p.IsPost() {
			posts = append(posts, p)
		} else {
			pages = append(pages, p)
		}
	}
	SortPosts(posts)

	all := make(PageList, 0, len(pages)+len(posts))
	all = append(all, pages...)
	all = append(all, posts...)

	return &Context{Site: s, Pages: pages, Posts: posts, All: all}
}

// RenderContext is the value every template is executed with.
type RenderContext struct {
	Site  Site
	Pages PageList
	Posts PageList
	All   PageList
	// Page is the summary of the item being rendered, nil for non-pages.
	Page *Page
	// Data is the payload of a structured page.
	Data meta.Map
	// Post and Content are bound while rendering a post.
	Post    *Page
	Content template.HTML
}

// Render returns the data for rendering the item summarized by current.
func (c *Context) Render(current *Page) RenderContext {
	return RenderContext{
		Site:  c.Site,
		Pages: c.Pages,
		Posts: c.Posts,
		All:   c.All,
		Page:  current,
	}
}

// WithData binds a structured page payload.
func (rc RenderContext) WithData(data meta.Map) RenderContext {
	rc.Data = data
	return rc
}

// WithPost binds a post and its rendered content.
func (rc RenderContext) WithPost(post *Page, content template.HTML) RenderContext {
	rc.Post = post
	rc.Content = content
	return rc
}

// URL is a shortcut for .Site.URL.
func (rc RenderContext) URL(ref string) string { return rc.Site.URL(ref) }
