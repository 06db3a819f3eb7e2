package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const usage = `Usage: pagecraft <command> [flags]

Commands:
  generate   Generate a page from a description
  extract    Print the renderable HTML contained in a file
  providers  List supported providers and models
  serve      Serve the HTTP API
  mcp        Serve MCP tools over stdio

Run "pagecraft <command> -h" for command flags.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(ctx, args[1:])
	case "extract":
		err = runExtract(args[1:])
	case "providers":
		err = runProviders(args[1:])
	case "serve":
		err = runServe(ctx, args[1:])
	case "mcp":
		err = runMCP(ctx, args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// commonFlags are accepted by every command that builds an engine.
type commonFlags struct {
	envFile   string
	configDir string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&c.configDir, "config-dir", "", "directory holding config.yaml (default: . and ./config)")
}

func newFlagSet(name, synopsis, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pagecraft %s %s\n\n%s\n\nFlags:\n", name, synopsis, description)
		fs.PrintDefaults()
	}
	return fs
}
