package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/widget"
)

// serveCommand creates the "serve" command: a local preview server for a
// built figure.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags mappingFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve <data-file>",
		Short: "Preview a figure in the browser",
		Long: `Serve builds a figure from a data file and serves it locally: the
widget page at /, the raw figure JSON at /spec.json. The figure is built
once at startup; restart the server to pick up data changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := flags.buildWidget(args[0])
			if err != nil {
				return err
			}

			page, err := renderHTML(previewWidget(w))
			if err != nil {
				return err
			}
			spec, err := w.RenderJSON()
			if err != nil {
				return err
			}

			return c.servePreview(cmd.Context(), addr, page, spec)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8093", "listen address")

	return cmd
}

// previewWidget adapts a widget for standalone preview: the polyfill and
// cross-widget selection assets are dropped (a single-page preview has
// nothing to link) and the charting bundle loads from its public CDN
// instead of a host-provided asset tree.
func previewWidget(w *widget.Widget) *widget.Widget {
	out := *w
	out.Dependencies = nil
	for _, d := range w.Dependencies {
		if d.Name != widget.DepCharting {
			continue
		}
		d.Src = "https://cdn.plot.ly"
		d.Script = "plotly-" + d.Version + ".min.js"
		d.Stylesheet = ""
		out.Dependencies = append(out.Dependencies, d)
	}
	return &out
}

// servePreview runs the HTTP server until the context is cancelled.
func (c *CLI) servePreview(ctx context.Context, addr string, page, spec []byte) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = rw.Write(page)
	})
	r.Get("/spec.json", func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(spec)
	})
	r.Get("/healthz", func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printSuccess("Preview server running")
	printDetail("Page: http://%s/", addr)
	printDetail("Spec: http://%s/spec.json", addr)
	c.Logger.Info("serving figure preview", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	}
}
