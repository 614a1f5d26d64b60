package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmuviz/sankeyflow/pkg/observability"
	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

// Routes served by the serve command.
const (
	routePage    = "/"
	routeSVG     = "/diagram.svg"
	routeLayout  = "/layout.json"
	routeHealthz = "/health/live"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render a diagram once and serve it over HTTP",
		Long: `Render a diagram once and serve it over HTTP.

The diagram is rendered at startup. The HTML page is served at /, the SVG at
/diagram.svg and the layout at /layout.json. Data files are not watched:
restart the server to pick up changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	addDataFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)
	addStyleFlags(cmd, &opts)

	return cmd
}

// runServe renders the diagram and serves it until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr string) error {
	if _, err := c.resolveOptions(&opts); err != nil {
		return err
	}
	opts.VizType = pipeline.VizTypeSankey
	opts.Formats = []string{pipeline.FormatHTML, pipeline.FormatSVG, pipeline.FormatJSON}

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newRouter(result.Artifacts, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	printSuccess("Serving %s", opts.Dataset)
	printFile("http://localhost" + addr)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.Stats.Columns)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		c.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			c.Logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	c.Logger.Info("server stopped")
	return nil
}

// newRouter serves pre-rendered artifacts.
func newRouter(artifacts map[string][]byte, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestHooks(logger))
	r.Use(middleware.Recoverer)

	r.Get(routeHealthz, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get(routePage, serveArtifact(artifacts[pipeline.FormatHTML], "text/html; charset=utf-8"))
	r.Get(routeSVG, serveArtifact(artifacts[pipeline.FormatSVG], "image/svg+xml"))
	r.Get(routeLayout, serveArtifact(artifacts[pipeline.FormatJSON], "application/json"))

	return r
}

func serveArtifact(data []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if data == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	}
}

// requestHooks reports every request to the server hooks and the logger.
func requestHooks(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path, status, elapsed)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", elapsed,
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
