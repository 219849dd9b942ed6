package commands

import (
	"context"
	"os/signal"
	"syscall"

	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/preview"
)

// WatchCmd serves the output directory and rebuilds on source changes.
type WatchCmd struct {
	Host         string `name:"host" help:"Listen host (overrides serverHost)."`
	Port         int    `name:"port" help:"Listen port (overrides serverPort)."`
	Open         bool   `name:"open" help:"Open the site in a browser tab."`
	NoLiveReload bool   `name:"no-live-reload" help:"Disable live reload script injection."`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if w.Host != "" {
		cfg.ServerHost = w.Host
	}
	if w.Port != 0 {
		cfg.ServerPort = w.Port
	}
	if w.Open {
		cfg.ServerOpenBrowserTab = true
	}
	if w.NoLiveReload {
		cfg.LiveReload = false
	}
	if err := cfg.Validate(); err != nil {
		return kerrors.ConfigInvalid(root.Config, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, rec := newGenerator(cfg, true)
	opts := preview.Options{Registry: rec.Registry(), Recorder: rec}
	if err := preview.Serve(ctx, cfg, g, opts); err != nil {
		return kerrors.ServerError(err)
	}
	return nil
}
