package testing

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/kssg/internal/config"
)

// Workspace is a temporary site workspace: a root holding src and output
// directories plus a configuration pointing at them.
type Workspace struct {
	t      *testing.T
	Root   string
	Config *config.Config
}

// NewWorkspace creates a workspace with default configuration in a
// temporary directory.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()

	cfg := config.Defaults()
	cfg.Root = root
	cfg.SrcPath = filepath.Join(root, "src")
	cfg.OutputPath = filepath.Join(root, "output")
	cfg.SiteTitle = "Test Site"
	cfg.SiteBaseURL = "https://example.com"

	if err := os.MkdirAll(cfg.SrcPath, testDirPermissions); err != nil {
		t.Fatalf("Failed to create source directory: %v", err)
	}

	return &Workspace{t: t, Root: root, Config: cfg}
}

// WithConfig applies fn to the workspace configuration.
func (w *Workspace) WithConfig(fn func(cfg *config.Config)) *Workspace {
	fn(w.Config)
	return w
}

// WriteSource writes a file under the source directory, creating parents.
func (w *Workspace) WriteSource(rel, content string) *Workspace {
	w.t.Helper()
	full := filepath.Join(w.Config.SrcPath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), testDirPermissions); err != nil {
		w.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), testFilePermissions); err != nil {
		w.t.Fatalf("Failed to write source %s: %v", rel, err)
	}
	return w
}

// WriteSources writes every rel -> content pair.
func (w *Workspace) WriteSources(files map[string]string) *Workspace {
	w.t.Helper()
	for rel, content := range files {
		w.WriteSource(rel, content)
	}
	return w
}

// SourcePath returns the absolute path of a source file.
func (w *Workspace) SourcePath(rel string) string {
	return filepath.Join(w.Config.SrcPath, filepath.FromSlash(rel))
}

// Output returns assertions rooted at the output directory.
func (w *Workspace) Output() *FileAssertions {
	return NewFileAssertions(w.t, w.Config.OutputPath)
}
