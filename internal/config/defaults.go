package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultServerHost    = "localhost"
	DefaultServerPort    = 8001
	DefaultPostDir       = "_posts"
	DefaultPostTemplate  = "_post.html"
	DefaultIndexFilename = "index.html"
	DefaultPrivatePrefix = "_"
)

// Defaults returns a configuration with every optional field set.
func Defaults() *Config {
	return &Config{
		ServerHost:               DefaultServerHost,
		ServerPort:               DefaultServerPort,
		LiveReload:               true,
		TemplateExtensions:       []string{".html"},
		PostExtensions:           []string{".md", ".markdown"},
		StructuredPageExtensions: []string{".json"},
		PostDir:                  DefaultPostDir,
		PostTemplate:             DefaultPostTemplate,
		IndexFilename:            DefaultIndexFilename,
		PrivatePrefix:            DefaultPrivatePrefix,
	}
}

// normalize resolves paths and canonicalizes extension lists.
func (c *Config) normalize() error {
	if c.SrcPath == "" || c.OutputPath == "" {
		return fmt.Errorf("%w: src and output must not be empty", ErrInvalidValue)
	}
	c.SrcPath = c.Resolve(c.SrcPath)
	c.OutputPath = c.Resolve(c.OutputPath)
	if c.MetricsFile != "" {
		c.MetricsFile = c.Resolve(c.MetricsFile)
	}

	c.TemplateExtensions = normalizeExtensions(c.TemplateExtensions)
	c.PostExtensions = normalizeExtensions(c.PostExtensions)
	c.StructuredPageExtensions = normalizeExtensions(c.StructuredPageExtensions)
	c.PostDir = strings.Trim(filepath.ToSlash(filepath.Clean(c.PostDir)), "/")
	return nil
}

// normalizeExtensions lowercases entries and guarantees a leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
