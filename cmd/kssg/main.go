package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kssg/cmd/kssg/commands"
	kerrors "git.home.luguber.info/inful/kssg/internal/errors"
	"git.home.luguber.info/inful/kssg/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("kssg"),
		kong.Description("A static site generator for templates, dated posts and static assets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}); err != nil {
		kerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
