package git

import (
	"errors"
	"fmt"

	ggit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository encloses the directory.
var ErrNotRepository = errors.New("not a git repository")

// Revision identifies the checked out commit.
type Revision struct {
	Hash   string
	Branch string
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Hash) > 7 {
		return r.Hash[:7]
	}
	return r.Hash
}

// ReadHead returns the HEAD revision of the repository containing dir.
// Parent directories are searched for the repository root.
func ReadHead(dir string) (Revision, error) {
	repo, err := ggit.PlainOpenWithOptions(dir, &ggit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, ggit.ErrRepositoryNotExists) {
			return Revision{}, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return Revision{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return Revision{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	rev := Revision{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}
