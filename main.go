package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"grayview/convert"
	"grayview/inspect"
	"grayview/parallel"
)

var cli struct {
	Jobs    int            `help:"Number of parallel workers (0 = one per CPU)" default:"0"`
	Convert convert.CLICmd `cmd:"" help:"Convert images to grayscale"`
	Inspect inspect.CLICmd `cmd:"" help:"Report grayscale statistics for images"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("grayview"),
		kong.Description("Grayscale conversion and inspection for image folders"))

	pool := parallel.Start(cli.Jobs)
	defer pool.Wait()

	if err := kctx.Run(pool); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
