package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/logging"
	"github.com/rshade/puretable/internal/server"
)

// serveParams holds the flags of the serve command.
type serveParams struct {
	host   string
	port   int
	locale string
}

// NewServeCmd creates the "serve" command, the browser viewer.
func NewServeCmd() *cobra.Command {
	var params serveParams

	cmd := &cobra.Command{
		Use:   "serve [FILE]",
		Short: "Serve the browser viewer",
		Long: `Starts an HTTP server with a table page and a JSON API over one document.

FILE, when given, is loaded at start-up. Further documents can be uploaded
from the page or posted to /api/document. A document that fails to load
leaves the current one in place. Metrics are exposed at /metrics.`,
		Example: `  # Serve a document on the default address
  puretable serve people.json

  # Listen on all interfaces
  puretable serve --host 0.0.0.0 --port 9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runServe(cmd, path, params)
		},
	}

	cmd.Flags().StringVar(&params.host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&params.port, "port", 0, "listen port (default from config)")
	cmd.Flags().StringVar(&params.locale, "locale", "", "BCP 47 locale for text sorting (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, path string, params serveParams) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	if params.host != "" {
		cfg.Server.Host = params.host
	}
	if params.port != 0 {
		cfg.Server.Port = params.port
	}

	sess, err := newSession(cfg, params.locale, cfg.Server.MaxUploadBytes)
	if err != nil {
		return err
	}
	if path != "" {
		if err = loadDocument(ctx, sess, path, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	srv, err := server.New(server.Options{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		DefaultPageSize: cfg.View.PageSize,
		WindowSize:      cfg.View.WindowSize,
		CleanupInterval: cfg.View.CacheTTL,
	}, sess, *logging.FromContext(ctx))
	if err != nil {
		return err
	}

	cmd.Printf("Serving on http://%s\n", srv.Addr())
	return srv.Run(ctx)
}
