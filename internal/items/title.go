package items

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/kssg/internal/config"
)

// deriveTitle names a plain template page after its file, or after its
// directory for index files. The root index takes the site title.
func deriveTitle(rel string, cfg *config.Config) string {
	base := path.Base(rel)
	if base == cfg.IndexFilename {
		dir := path.Dir(rel)
		if dir == "." {
			return cfg.SiteTitle
		}
		base = path.Base(dir)
	} else {
		base = strings.TrimSuffix(base, path.Ext(base))
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
