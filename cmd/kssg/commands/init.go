package commands

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/kssg/internal/config"
	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/workspace"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Title    string `help:"Site title" default:"Your Title"`
	BaseURL  string `name:"base-url" help:"Absolute base URL of the published site" default:"https://example.com"`
	Scaffold bool   `help:"Write a starter index page and post template"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	mgr, err := workspace.NewManager(root.Config)
	if err != nil {
		return kerrors.FileSystemError("init", err)
	}

	fmt.Printf("Writing configuration to %s\n", mgr.ConfigPath())
	cfg, err := mgr.Init(workspace.InitOptions{Title: i.Title, BaseURL: i.BaseURL, Scaffold: i.Scaffold})
	switch {
	case errors.Is(err, config.ErrConfigExists):
		return kerrors.ConfigExists(mgr.ConfigPath(), err)
	case errors.Is(err, config.ErrInvalidValue):
		return kerrors.ConfigInvalid(mgr.ConfigPath(), err)
	case err != nil:
		return kerrors.FileSystemError("init", err)
	}
	fmt.Printf("Initialized workspace: src=%s output=%s\n", cfg.SrcPath, cfg.OutputPath)
	return nil
}
