package templates

import (
	"encoding/json"
	"fmt"
	"html/template"
	"time"
)

// FuncOptions supplies the site-dependent helpers exposed to every template.
type FuncOptions struct {
	// AbsURL resolves a path or URL against the site base URL.
	AbsURL func(string) string
	// Markdown converts Markdown source to HTML.
	Markdown func([]byte) ([]byte, error)
}

// Funcs returns the function map available in every template:
//
//	absURL      "/about/" -> "https://example.com/about/"
//	dateFormat  "2006-01-02" .Date
//	markdownify "*text*" -> HTML
//	json        any value -> JSON text
//	safeHTML    string -> unescaped HTML
func Funcs(opts FuncOptions) template.FuncMap {
	return template.FuncMap{
		"absURL": func(s string) string {
			if opts.AbsURL == nil {
				return s
			}
			return opts.AbsURL(s)
		},
		"dateFormat": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		"markdownify": func(s string) (template.HTML, error) {
			if opts.Markdown == nil {
				return "", fmt.Errorf("markdownify is not configured")
			}
			out, err := opts.Markdown([]byte(s))
			if err != nil {
				return "", err
			}
			// #nosec G203 -- post and page authors own the Markdown source.
			return template.HTML(out), nil
		},
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
		"safeHTML": func(s string) template.HTML {
			// #nosec G203 -- explicit opt-in by the template author.
			return template.HTML(s)
		},
	}
}
