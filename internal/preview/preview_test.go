package preview

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kssg/internal/config"
	"git.home.luguber.info/inful/kssg/internal/generator"
)

type fakeBuilder struct {
	out    string
	builds atomic.Int32
}

func (f *fakeBuilder) Rebuild(context.Context) (*generator.Result, error) {
	n := f.builds.Add(1)
	if err := os.MkdirAll(f.out, 0o750); err != nil {
		return nil, err
	}
	body := "<html><body>build " + strconv.Itoa(int(n)) + "</body></html>"
	if err := os.WriteFile(filepath.Join(f.out, "index.html"), []byte(body), 0o600); err != nil {
		return nil, err
	}
	return &generator.Result{BuildID: "build-" + strconv.Itoa(int(n))}, nil
}

func TestServe_BuildsServesAndRebuilds(t *testing.T) {
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.SrcPath = filepath.Join(root, "src")
	cfg.OutputPath = filepath.Join(root, "output")
	require.NoError(t, os.MkdirAll(cfg.SrcPath, 0o750))

	b := &fakeBuilder{out: cfg.OutputPath}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, cfg, b, Options{}) }()

	base := "http://" + ln.Addr().String()
	fetch := func() string {
		resp, err := http.Get(base + "/") // #nosec G107 -- test server
		if err != nil {
			return ""
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	require.Eventually(t, func() bool { return fetch() != "" }, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, fetch(), "build 1"+scriptTag)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.SrcPath, "index.html"), []byte("x"), 0o600))
	require.Eventually(t, func() bool { return b.builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_MissingSourceDirectory(t *testing.T) {
	cfg := config.Defaults()
	cfg.SrcPath = filepath.Join(t.TempDir(), "missing")
	cfg.OutputPath = t.TempDir()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = serve(t.Context(), ln, cfg, &fakeBuilder{out: cfg.OutputPath}, Options{})
	require.Error(t, err)
}

func TestReloadToken(t *testing.T) {
	assert.Equal(t, "abc", reloadToken(&generator.Result{BuildID: "abc"}))
	assert.NotEmpty(t, reloadToken(nil))
	assert.NotEqual(t, reloadToken(nil), reloadToken(nil))
}
