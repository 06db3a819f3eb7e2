package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/germanamz/pagecraft/internal/server"
	"github.com/germanamz/pagecraft/pkg/htmlextract"
	"github.com/germanamz/pagecraft/pkg/mcpserver"
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
	"golang.org/x/sync/errgroup"
)

// version is reported to MCP clients.
const version = "0.1.0"

func runExtract(args []string) error {
	fs := newFlagSet("extract", "<file|->", "Print the renderable HTML contained in a generated code file.")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one input file is required")
	}

	var (
		data []byte
		err  error
	)
	if name := fs.Arg(0); name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name) //nolint:gosec // input path is chosen by the user
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, htmlextract.Extract(string(data)))
	return err
}

func runProviders(args []string) error {
	fs := newFlagSet("providers", "", "List supported providers and their models.")
	_ = fs.Parse(args)

	return printProviders(os.Stdout)
}

func printProviders(w io.Writer) error {
	for _, d := range catalog.All() {
		var needs []string
		if d.RequiresCredential {
			needs = append(needs, "apiKey")
		}
		if d.RequiresBaseURL {
			needs = append(needs, "baseUrl")
		}
		if len(needs) == 0 {
			needs = append(needs, "nic")
		}

		models := make([]string, len(d.SupportedModels))
		for i, m := range d.SupportedModels {
			if m == d.DefaultModel {
				m += " (domyślny)"
			}
			models[i] = m
		}

		if _, err := fmt.Fprintf(w, "%s %s\n  %s %s\n  %s %s\n\n",
			headerStyle.Render(string(d.ID)), dimStyle.Render(d.DisplayName),
			dimStyle.Render("wymaga:"), strings.Join(needs, ", "),
			dimStyle.Render("modele:"), strings.Join(models, ", "),
		); err != nil {
			return err
		}
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := newFlagSet("serve", "[flags]", "Serve the HTTP API.")
	var flags commonFlags
	flags.register(fs)
	addr := fs.String("addr", "", "listen address (overrides config)")
	_ = fs.Parse(args)

	a, err := setup(ctx, flags)
	if err != nil {
		return err
	}

	if *addr != "" {
		a.cfg.Address = *addr
	}

	srv := server.New(a.cfg.Address, a.engine, a.log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(context.Background())
	})

	return g.Wait()
}

func runMCP(ctx context.Context, args []string) error {
	fs := newFlagSet("mcp", "[flags]", "Serve generate_page and extract_html as MCP tools over stdio.")
	var flags commonFlags
	flags.register(fs)
	_ = fs.Parse(args)

	a, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	s := mcpserver.New(a.engine, version)

	a.log.Info().Msg("serving MCP over stdio")

	if err := s.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
