package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/items"
	"git.home.luguber.info/inful/kssg/internal/logfields"
	"git.home.luguber.info/inful/kssg/internal/observability"
	"git.home.luguber.info/inful/kssg/internal/site"
)

// discovered pairs an item with the summary it contributes, if any.
type discovered struct {
	item    *items.Item
	summary *site.Page
}

// discover is Phase 1. It fails on the first classification error, before
// anything is rendered.
func (g *Generator) discover(ctx context.Context) ([]discovered, []site.Page, error) {
	rels, err := listSources(g.cfg.SrcPath)
	if err != nil {
		return nil, nil, kerrors.FileSystemError("discover", err)
	}

	found := make([]discovered, 0, len(rels))
	var summaries []site.Page
	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		it, err := items.Classify(rel, g.cfg)
		if err != nil {
			return nil, nil, kerrors.ClassificationFailed(rel, err)
		}
		d := discovered{item: it, summary: it.Summary()}
		if d.summary != nil {
			summaries = append(summaries, *d.summary)
		}
		found = append(found, d)
		observability.DebugContext(ctx, "Classified source", logfields.Item(rel), logfields.Kind(it.Kind.String()))
	}

	observability.InfoContext(ctx, "Discovered sources", logfields.Count(len(found)))
	return found, summaries, nil
}

// listSources returns every regular file below root as a slash-separated
// relative path, sorted lexicographically.
func listSources(root string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			st, statErr := os.Stat(p)
			if statErr != nil || !st.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(rels)
	return rels, nil
}
