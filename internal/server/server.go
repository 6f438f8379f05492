// Package server exposes the renderer over HTTP.
//
//	GET /healthz
//	GET /views
//	GET /render?width=800&height=600&xmin=-2&xmax=2&ymin=-1.5&ymax=1.5&format=png
//
// /render accepts the same parameters as the render command plus view,
// palette, shading and format. Parameters left out keep the server's job
// defaults. Responses carry X-Render-ID and X-Cache (hit or miss) headers.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/willbeason/newton-fractal/pkg/config"
	"github.com/willbeason/newton-fractal/pkg/errors"
	"github.com/willbeason/newton-fractal/pkg/fractal"
	"github.com/willbeason/newton-fractal/pkg/pipeline"
	"github.com/willbeason/newton-fractal/pkg/sink"
)

// renderTimeout bounds a single /render request.
const renderTimeout = 2 * time.Minute

type Server struct {
	runner *pipeline.Runner
	base   config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a server rendering jobs derived from base.
func New(runner *pipeline.Runner, base config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, base: base, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/views", s.handleViews)
	r.With(middleware.Timeout(renderTimeout)).Get("/render", s.handleRender)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.base.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
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
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fractal.Views)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg, format, err := s.job(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), cfg, pipeline.Options{
		Format:  format,
		Refresh: r.URL.Query().Get("refresh") == "true",
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheHit {
		cacheStatus = "hit"
	}

	w.Header().Set("Content-Type", sink.ContentType(res.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("X-Render-ID", res.ID)
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// job applies query parameters to the server's base job: view first, then
// explicit coordinates and sizes.
func (s *Server) job(q url.Values) (config.Config, string, error) {
	cfg := s.base

	if name := q.Get("view"); name != "" {
		v, ok := fractal.Views[name]
		if !ok {
			return config.Config{}, "", errors.New(errors.ErrCodeNotFound, "unknown view %q", name)
		}
		cfg.SetView(v.WithSize(cfg.Width, cfg.Height))
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
	}
	for _, p := range ints {
		if raw := q.Get(p.name); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return config.Config{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be an integer, got %q", p.name, raw)
			}
			*p.dst = n
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"xmin", &cfg.View.XMin},
		{"xmax", &cfg.View.XMax},
		{"ymin", &cfg.View.YMin},
		{"ymax", &cfg.View.YMax},
	}
	for _, p := range floats {
		if raw := q.Get(p.name); raw != "" {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return config.Config{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be a number, got %q", p.name, raw)
			}
			*p.dst = f
		}
	}

	if p := q.Get("palette"); p != "" {
		cfg.Color.Palette = p
	}
	if sh := q.Get("shading"); sh != "" {
		cfg.Color.Shading = sh
	}

	if cfg.Width > 0 && cfg.Height > 0 && cfg.Width > cfg.Server.MaxPixels/cfg.Height {
		return config.Config{}, "", errors.New(errors.ErrCodeInvalidInput,
			"%dx%d exceeds the limit of %d pixels", cfg.Width, cfg.Height, cfg.Server.MaxPixels)
	}

	format := q.Get("format")
	if format == "" {
		format = sink.FormatPNG
	}
	return cfg, format, nil
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch {
	case code == errors.ErrCodeInvalidInput, code == errors.ErrCodeInvalidConfig, code == errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
