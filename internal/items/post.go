package items

import (
	"fmt"
	"os"
	"slices"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/frontmatter"
	"git.home.luguber.info/inful/kssg/internal/postname"
)

// classifyPost parses a file found in the post directory. ok is false when
// the name or extension disqualifies it, which makes the file ignored.
func classifyPost(input, name, ext string, cfg *config.Config) (pm *PostMeta, link string, ok bool, err error) {
	if !slices.Contains(cfg.PostExtensions, ext) {
		return nil, "", false, nil
	}
	pn, ok := postname.Parse(name)
	if !ok {
		return nil, "", false, nil
	}

	// #nosec G304 -- input comes from walking the source directory.
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, "", false, fmt.Errorf("read post: %w", err)
	}
	doc, err := frontmatter.Parse(content)
	if err != nil {
		return nil, "", false, err
	}

	title, ok := scalarString(doc.Fields.Get("title"))
	if !ok || title == "" {
		return nil, "", false, ErrMissingTitle
	}
	short, ok := scalarString(doc.Fields.Get("short"))
	if !ok || short == "" {
		return nil, "", false, ErrMissingShort
	}
	order := 0
	if doc.Fields.Has("order") {
		v, isInt := doc.Fields.Get("order").(int)
		if !isInt {
			return nil, "", false, fmt.Errorf("%w: order must be an integer", ErrInvalidField)
		}
		order = v
	}

	return &PostMeta{
		Title:       title,
		Short:       short,
		Order:       order,
		FrontMatter: doc.Fields,
		Fingerprint: doc.Fingerprint,
		Name:        pn,
	}, pn.Link(), true, nil
}

// postBody returns the Markdown body of a post source.
func postBody(input string) ([]byte, error) {
	// #nosec G304 -- input comes from walking the source directory.
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}
	_, body, _, err := frontmatter.Split(content)
	return body, err
}

// scalarString renders a scalar metadata value as text.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int, float64, bool:
		return fmt.Sprint(x), true
	default:
		return "", false
	}
}
