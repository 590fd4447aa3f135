package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/polydocs/cmd/polydocs/commands"
	"git.home.luguber.info/inful/polydocs/internal/errors"
	"git.home.luguber.info/inful/polydocs/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("polydocs"),
		kong.Description("Multi-language documentation build orchestrator"),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{}, &cli); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(errors.ExitCode(err))
	}
}
