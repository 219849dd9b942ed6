package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/kssg/internal/logfields"
)

// loadEnvFile loads .env and .env.local from the workspace root when present.
// Existing process environment variables are not overwritten.
func loadEnvFile(root string) error {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
	return nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandString replaces ${VAR} references with their environment values.
// Any other use of $ is kept literally.
func expandString(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

func expandAll(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = expandString(v)
	}
	return out
}

// expandEnv expands ${VAR} references in every decoded string field.
func (c *Config) expandEnv() {
	for _, f := range []*string{
		&c.SrcPath, &c.OutputPath, &c.SiteTitle, &c.SiteBaseURL, &c.ServerHost,
		&c.PostDir, &c.PostTemplate, &c.IndexFilename, &c.PrivatePrefix, &c.MetricsFile,
	} {
		*f = expandString(*f)
	}
	c.TemplateExtensions = expandAll(c.TemplateExtensions)
	c.PostExtensions = expandAll(c.PostExtensions)
	c.StructuredPageExtensions = expandAll(c.StructuredPageExtensions)
}
