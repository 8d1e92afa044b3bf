package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	sperrors "github.com/matzehuels/sparklines/pkg/errors"
	"github.com/matzehuels/sparklines/pkg/observability"
	"github.com/matzehuels/sparklines/pkg/pipeline"
	"github.com/matzehuels/sparklines/pkg/sparkline/settings"
	"github.com/matzehuels/sparklines/pkg/sparkline/value"
)

// maxBodySize bounds POST /sparkline request bodies.
const maxBodySize = 1 << 20

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cache cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render sparklines over HTTP",
		Long: `Serve sparklines over HTTP.

  GET  /sparkline.{svg,json,png,pdf}?values=1,3,,-4&preset=column&width=120
  POST /sparkline   {"settings": {...}, "values": [...], "format": "svg"}
  GET  /healthz
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetRenderHooks(hooks)
			observability.SetCacheHooks(hooks)
			defer observability.Reset()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(runner, logger, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return listen(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cache.register(cmd)
	return cmd
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func listen(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer builds the HTTP routes. metrics may be nil.
func newServer(runner *pipeline.Runner, logger *log.Logger, metrics http.Handler) http.Handler {
	s := &server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Get("/sparkline.{format}", s.handleQuery)
	r.Post("/sparkline", s.handleBody)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// handleQuery renders GET /sparkline.{format}.
func (s *server) handleQuery(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	in := inputOpts{
		values:  q.Get("values"),
		preset:  q.Get("preset"),
		color:   q.Get("color"),
		missing: q.Get("missing"),
	}
	if in.values == "" {
		s.writeError(w, sperrors.New(sperrors.ErrCodeInvalidInput, "query parameter values is required"))
		return
	}
	var err error
	if in.width, err = queryFloat(q.Get("width")); err != nil {
		s.writeError(w, err)
		return
	}
	if in.height, err = queryFloat(q.Get("height")); err != nil {
		s.writeError(w, err)
		return
	}
	props, err := in.loadSettings()
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		ID:          q.Get("id"),
		Values:      value.ParseList(in.values),
		Settings:    props,
		Formats:     []string{format},
		HoverScript: q.Get("hover") == "true" || q.Get("hover") == "1",
	}
	if at := q.Get("at"); at != "" {
		x, err := queryFloat(at)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts.HoverAt = &x
	}
	s.render(w, r, opts)
}

// renderRequest is the body of POST /sparkline. Settings and values are
// decoded by their own strict parsers.
type renderRequest struct {
	ID          string          `json:"id"`
	Settings    json.RawMessage `json:"settings"`
	Values      json.RawMessage `json:"values"`
	Format      string          `json:"format"`
	HoverScript bool            `json:"hoverScript"`
	HoverAt     *float64        `json:"hoverAt"`
}

// handleBody renders POST /sparkline.
func (s *server) handleBody(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, err)
		return
	}

	var props settings.Props
	if len(req.Settings) > 0 {
		var err error
		if props, err = settings.ParseJSON(req.Settings); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if len(req.Values) == 0 {
		s.writeError(w, sperrors.New(sperrors.ErrCodeInvalidInput, "values are required"))
		return
	}
	values, err := value.ParseJSON(req.Values)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.render(w, r, pipeline.Options{
		ID:          req.ID,
		Values:      values,
		Settings:    props,
		Formats:     []string{req.Format},
		HoverScript: req.HoverScript,
		HoverAt:     req.HoverAt,
	})
}

func (s *server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Sparkline-Cache", cacheStatus)
	_, _ = w.Write(result.Artifacts[format])
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Kind  string `json:"kind,omitempty"`
}

// writeError maps render errors to 422, bad requests to 400 and
// everything else to 500.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: sperrors.UserMessage(err),
		Code:  string(sperrors.GetCode(err)),
		Kind:  sperrors.Kind(err),
	})
}

func statusFor(err error) int {
	switch {
	case sperrors.IsRender(err):
		return http.StatusUnprocessableEntity
	case sperrors.Is(err, sperrors.ErrCodeInvalidInput), sperrors.Is(err, sperrors.ErrCodeInvalidFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func queryFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, sperrors.New(sperrors.ErrCodeInvalidInput, "invalid number %q", s)
	}
	return f, nil
}
