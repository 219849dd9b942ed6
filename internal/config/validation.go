package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// Validate checks the cross-field constraints of a loaded configuration.
func (c *Config) Validate() error {
	if c.SiteTitle == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidValue)
	}
	u, err := url.Parse(c.SiteBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute URL", ErrInvalidValue, c.SiteBaseURL)
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("%w: serverPort %d out of range", ErrInvalidValue, c.ServerPort)
	}
	if within(c.OutputPath, c.SrcPath) || within(c.SrcPath, c.OutputPath) {
		return fmt.Errorf("%w: src and output must not contain each other", ErrInvalidValue)
	}
	if c.PostDir == "" || c.PostDir == "." {
		return fmt.Errorf("%w: postDir must name a subdirectory", ErrInvalidValue)
	}
	if c.IndexFilename == "" {
		return fmt.Errorf("%w: indexFilename must not be empty", ErrInvalidValue)
	}
	for _, ext := range c.StructuredPageExtensions {
		if slices.Contains(c.TemplateExtensions, ext) {
			return fmt.Errorf("%w: extension %s is both a template and a structured page extension", ErrInvalidValue, ext)
		}
	}
	return nil
}

// within reports whether p equals dir or lies beneath it.
func within(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
