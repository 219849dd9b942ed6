package items

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Output files are published, so they are world readable.
const (
	outputDirMode  = 0o755
	outputFileMode = 0o644
)

// checkOutputPath ensures fullPath stays inside root.
func checkOutputPath(root, fullPath string) error {
	if root == "" {
		return errors.New("output directory is required")
	}
	rel, err := filepath.Rel(root, fullPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path %s escapes output directory", fullPath)
	}
	return nil
}

// writeFile writes content to fullPath, creating parent directories lazily.
// Existing files are replaced.
func writeFile(root, fullPath string, content []byte) error {
	if err := checkOutputPath(root, fullPath); err != nil {
		return err
	}
	// #nosec G301 -- published site output.
	if err := os.MkdirAll(filepath.Dir(fullPath), outputDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	// #nosec G306 -- published site output.
	if err := os.WriteFile(fullPath, content, outputFileMode); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// copyFile copies src to dst byte for byte and keeps the source file mode.
func copyFile(root, src, dst string) error {
	if err := checkOutputPath(root, dst); err != nil {
		return err
	}

	// #nosec G304 -- src comes from walking the source directory.
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open static file: %w", err)
	}
	defer func() { _ = in.Close() }()

	st, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat static file: %w", err)
	}

	// #nosec G301 -- published site output.
	if err := os.MkdirAll(filepath.Dir(dst), outputDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// A read-only copy from an earlier build cannot be truncated.
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace output file: %w", err)
	}
	// #nosec G304 -- dst is validated to stay under the output directory.
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy static file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	// OpenFile applies the umask; restore the exact source permissions.
	if err := os.Chmod(dst, st.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod output file: %w", err)
	}
	return nil
}
