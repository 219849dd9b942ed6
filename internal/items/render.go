package items

import (
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/kssg/internal/markdown"
	"git.home.luguber.info/inful/kssg/internal/site"
	"git.home.luguber.info/inful/kssg/internal/templates"
)

// Env bundles what rendering needs beyond the item and its context.
type Env struct {
	Templates    *templates.Environment
	Markdown     *markdown.Converter
	PostTemplate string
	// OutputRoot bounds every write.
	OutputRoot string
}

// Render produces the output of one item. rc carries the item's own summary
// as the current page.
func Render(it *Item, env *Env, rc site.RenderContext) error {
	switch it.Kind {
	case Ignore:
		return nil
	case Static:
		return copyFile(env.OutputRoot, it.Input, it.Output)
	case Template:
		out, err := env.Templates.Render(it.Rel, rc)
		if err != nil {
			return err
		}
		return writeFile(env.OutputRoot, it.Output, []byte(out))
	case StructuredPage:
		out, err := env.Templates.Render(it.Page.Template, rc.WithData(it.Page.Data))
		if err != nil {
			return err
		}
		return writeFile(env.OutputRoot, it.Output, []byte(out))
	case Post:
		return renderPost(it, env, rc)
	default:
		return fmt.Errorf("render %s: unknown item kind %d", it.Rel, it.Kind)
	}
}

// renderPost converts the body to HTML, expands that HTML as a template with
// the post bound, then wraps the result in the post template.
func renderPost(it *Item, env *Env, rc site.RenderContext) error {
	body, err := postBody(it.Input)
	if err != nil {
		return err
	}
	src, err := env.Markdown.ToTemplate(body)
	if err != nil {
		return fmt.Errorf("%s: %w", it.Rel, err)
	}

	post := rc.Page
	if post == nil {
		post = it.Summary()
	}

	content, err := env.Templates.RenderString(it.Rel, src, rc.WithPost(post, ""))
	if err != nil {
		return err
	}
	// #nosec G203 -- content is the site author's own rendered post.
	out, err := env.Templates.Render(env.PostTemplate, rc.WithPost(post, template.HTML(content)))
	if err != nil {
		return err
	}
	return writeFile(env.OutputRoot, it.Output, []byte(out))
}
