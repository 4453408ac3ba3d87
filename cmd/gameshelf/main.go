package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gameshelf/cmd/gameshelf/commands"
	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("gameshelf"),
		kong.Description("Build a cross-linked index of tabletop game rules from a directory of HTML fragments."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default(), Stdout: os.Stdout}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
