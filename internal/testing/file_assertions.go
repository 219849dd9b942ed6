package testing

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

func (fa *FileAssertions) path(relativePath string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	if stat, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	} else if stat.IsDir() {
		fa.t.Errorf("Expected %s to be a file, but it's a directory", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertDirExists validates that a directory exists
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	if stat, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected directory to exist: %s", fullPath)
	} else if !stat.IsDir() {
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

// AssertEmpty validates that the base directory exists and holds nothing
func (fa *FileAssertions) AssertEmpty() *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(fa.baseDir)
	if err != nil {
		fa.t.Errorf("Failed to read directory %s: %v", fa.baseDir, err)
		return fa
	}
	if len(entries) != 0 {
		fa.t.Errorf("Expected %s to be empty, found %d entries", fa.baseDir, len(entries))
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}

	if !strings.Contains(string(content), expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, string(content))
	}
	return fa
}

// AssertFileEquals validates the exact content of a file
func (fa *FileAssertions) AssertFileEquals(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	if got := fa.GetFileContent(relativePath); got != expectedContent {
		fa.t.Errorf("File %s content mismatch\nwant:\n%s\ngot:\n%s", relativePath, expectedContent, got)
	}
	return fa
}

// AssertOrder validates that the given snippets appear in a file in order
func (fa *FileAssertions) AssertOrder(relativePath string, snippets ...string) *FileAssertions {
	fa.t.Helper()
	content := fa.GetFileContent(relativePath)
	pos := 0
	for _, s := range snippets {
		idx := strings.Index(content[pos:], s)
		if idx < 0 {
			fa.t.Errorf("Expected %q after offset %d in %s\nActual content:\n%s", s, pos, relativePath, content)
			return fa
		}
		pos += idx + len(s)
	}
	return fa
}

// ListFilesRecursive returns every file below the base directory as sorted
// slash-separated relative paths.
func (fa *FileAssertions) ListFilesRecursive() []string {
	fa.t.Helper()
	var files []string
	err := filepath.WalkDir(fa.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(fa.baseDir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		fa.t.Fatalf("Failed to walk %s: %v", fa.baseDir, err)
	}
	sort.Strings(files)
	return files
}

// Snapshot returns the content of every file below the base directory keyed
// by relative path.
func (fa *FileAssertions) Snapshot() map[string]string {
	fa.t.Helper()
	out := make(map[string]string)
	for _, rel := range fa.ListFilesRecursive() {
		out[rel] = fa.GetFileContent(rel)
	}
	return out
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	fullPath := fa.path(relativePath)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}
