package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestReadHead(t *testing.T) {
	dir := t.TempDir()
	repo, err := ggit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "index.html"), []byte("hi"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("src/index.html")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &ggit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev, err := ReadHead(filepath.Join(dir, "src"))
	require.NoError(t, err)
	require.Equal(t, hash.String(), rev.Hash)
	require.Len(t, rev.Short(), 7)
	require.NotEmpty(t, rev.Branch)
}

func TestReadHead_NotRepository(t *testing.T) {
	_, err := ReadHead(t.TempDir())
	require.ErrorIs(t, err, ErrNotRepository)
}

func TestReadHead_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := ggit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = ReadHead(dir)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotRepository)
}

func TestRevisionShort(t *testing.T) {
	require.Equal(t, "abc", Revision{Hash: "abc"}.Short())
	require.Equal(t, "0123456", Revision{Hash: "0123456789"}.Short())
}
