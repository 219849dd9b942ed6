// Package templates resolves and renders html/template sources by their
// slash-separated path relative to the site source directory.
//
// Templates reference each other by that path, for example
// {{template "_base.html" .}}. Referenced files are loaded on demand, so
// files that are never rendered on their own (partials, layouts) remain
// usable by name. When two loaded files define the same block, the first
// definition wins: a page overrides the blocks of the layout it invokes.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template/parse"
)

var (
	// ErrTemplateNotFound is returned when a name does not resolve to a source file.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplate marks syntax and execution failures.
	ErrTemplate = errors.New("template error")
)

// Environment loads template sources from a root directory. Sources are
// cached for the lifetime of the environment, which is one build.
type Environment struct {
	root    string
	funcs   template.FuncMap
	sources map[string]string
}

// NewEnvironment creates an environment rooted at dir.
func NewEnvironment(dir string, funcs template.FuncMap) *Environment {
	return &Environment{
		root:    dir,
		funcs:   funcs,
		sources: make(map[string]string),
	}
}

// Source returns the text of the named template.
func (e *Environment) Source(name string) (string, error) {
	if src, ok := e.sources[name]; ok {
		return src, nil
	}

	clean := path.Clean(name)
	if clean != name || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: invalid name %q", ErrTemplateNotFound, name)
	}

	full := filepath.Join(e.root, filepath.FromSlash(clean))
	st, err := os.Stat(full)
	if err != nil || !st.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	// #nosec G304 -- full is validated to stay under root.
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	e.sources[name] = string(data)
	return e.sources[name], nil
}

// Render expands the named template with data.
func (e *Environment) Render(name string, data any) (string, error) {
	src, err := e.Source(name)
	if err != nil {
		return "", err
	}
	return e.RenderString(name, src, data)
}

// RenderString expands src as a template called name. Templates it invokes
// are resolved through the environment.
func (e *Environment) RenderString(name, src string, data any) (string, error) {
	t := template.New(name).Funcs(e.funcs).Option("missingkey=error")
	if _, err := t.Parse(src); err != nil {
		return "", fmt.Errorf("%w: parse template %s: %w", ErrTemplate, name, err)
	}

	if err := e.resolveReferences(t); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: render template %s: %w", ErrTemplate, name, err)
	}
	return buf.String(), nil
}

// resolveReferences loads every referenced but undefined template until the
// set is closed. Names without a source file are left for Execute to report.
func (e *Environment) resolveReferences(t *template.Template) error {
	tried := map[string]bool{}
	for {
		var pending []string
		for _, name := range references(t) {
			if defined(t, name) || tried[name] {
				continue
			}
			tried[name] = true
			pending = append(pending, name)
		}
		if len(pending) == 0 {
			return nil
		}
		sort.Strings(pending)

		for _, name := range pending {
			src, err := e.Source(name)
			if errors.Is(err, ErrTemplateNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := e.associate(t, name, src); err != nil {
				return err
			}
		}
	}
}

// associate parses src separately and adds its trees to t without replacing
// blocks t already defines.
func (e *Environment) associate(t *template.Template, name, src string) error {
	tmp := template.New(name).Funcs(e.funcs)
	if _, err := tmp.Parse(src); err != nil {
		return fmt.Errorf("%w: parse template %s: %w", ErrTemplate, name, err)
	}
	for _, sub := range tmp.Templates() {
		if sub.Tree == nil {
			continue
		}
		if sub.Name() != name && defined(t, sub.Name()) {
			continue
		}
		if _, err := t.AddParseTree(sub.Name(), sub.Tree); err != nil {
			return fmt.Errorf("%w: load template %s: %w", ErrTemplate, name, err)
		}
	}
	return nil
}

func defined(t *template.Template, name string) bool {
	sub := t.Lookup(name)
	return sub != nil && sub.Tree != nil && sub.Tree.Root != nil
}

// references lists the names invoked through {{template}} or {{block}}
// anywhere in the set.
func references(t *template.Template) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walk(c)
			}
		case *parse.IfNode:
			walk(n.List)
			walk(n.ElseList)
		case *parse.RangeNode:
			walk(n.List)
			walk(n.ElseList)
		case *parse.WithNode:
			walk(n.List)
			walk(n.ElseList)
		case *parse.TemplateNode:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		}
	}
	for _, sub := range t.Templates() {
		if sub.Tree != nil {
			walk(sub.Tree.Root)
		}
	}
	return out
}
