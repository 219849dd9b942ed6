package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/logfields"
)

const starterIndex = `<!DOCTYPE html>
<html>
<head><title>{{.Site.Title}}</title></head>
<body>
<h1>{{.Site.Title}}</h1>
<ul>
{{range .Posts}}<li><a href="{{absURL .Link}}">{{.Title}}</a> {{dateFormat "2006-01-02" .Date}}: {{.Short}}</li>
{{end}}</ul>
</body>
</html>
`

const starterPost = `<!DOCTYPE html>
<html>
<head><title>{{.Post.Title}} | {{.Site.Title}}</title></head>
<body>
<article>
<h1>{{.Post.Title}}</h1>
{{.Content}}
</article>
<a href="{{absURL "/"}}">{{.Site.Title}}</a>
</body>
</html>
`

// scaffold writes starter templates into the source directory. Existing
// files are kept.
func scaffold(cfg *config.Config) error {
	files := []struct {
		rel     string
		content string
	}{
		{cfg.IndexFilename, starterIndex},
		{cfg.PostTemplate, starterPost},
	}
	for _, f := range files {
		full := filepath.Join(cfg.SrcPath, filepath.FromSlash(f.rel))
		// #nosec G301 -- workspace directories are user content.
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.rel, err)
		}
		// #nosec G304 G302 -- full is below the configured source directory.
		fh, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			slog.Debug("Keeping existing file", logfields.Path(full))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.rel, err)
		}
		_, werr := fh.WriteString(f.content)
		if cerr := fh.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return fmt.Errorf("failed to write %s: %w", f.rel, werr)
		}
		slog.Info("Wrote starter template", logfields.Path(full))
	}
	// #nosec G301 -- workspace directories are user content.
	if err := os.MkdirAll(filepath.Join(cfg.SrcPath, filepath.FromSlash(cfg.PostDir)), 0o755); err != nil {
		return fmt.Errorf("failed to create post directory: %w", err)
	}
	return nil
}
