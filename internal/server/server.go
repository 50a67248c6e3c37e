package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hyp/bioform/internal/model"
	"github.com/hyp/bioform/internal/pipeline"
	"github.com/hyp/bioform/internal/report"
)

const (
	// RequestIDHeader carries the identifier assigned to each request.
	RequestIDHeader = "X-Request-Id"

	// SkippedRowsHeader carries the number of rows left out of a report.
	SkippedRowsHeader = "X-Skipped-Rows"

	// shutdownTimeout bounds how long in-flight downloads may finish after
	// the server is asked to stop.
	shutdownTimeout = 30 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// Server serves CSV reports computed on demand.
type Server struct {
	computer pipeline.Computer
	logger   *slog.Logger
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server that computes reports with computer.
func New(computer pipeline.Computer, opts ...Option) *Server {
	s := &Server{
		computer: computer,
		mux:      http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	for _, kind := range model.AllReports {
		s.mux.HandleFunc("GET /"+kind.String(), s.reportHandler(kind))
	}

	return s
}

// Handler returns the HTTP handler with request IDs attached.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		// Requests outlive ctx so in-flight downloads can finish during shutdown.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type requestIDKey struct{}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Available reports:")
	for _, kind := range model.AllReports {
		fmt.Fprintf(w, "  /%s\t%s\n", kind.String(), kind.FileName())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) reportHandler(kind model.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("request_id", RequestID(r.Context()), "report", kind.String())
		start := time.Now()

		run := s.computer.Run(r.Context(), kind)
		if !run.Succeeded() {
			err := run.Err
			if err == nil {
				err = errors.New("report produced no table")
			}
			status := statusFor(err)
			logger.Error("report failed", "status", status, "error", err)
			http.Error(w, errorMessage(err), status)
			return
		}

		body, err := report.Render(run.Table)
		if err != nil {
			logger.Error("failed to render report", "error", err)
			http.Error(w, "failed to render report", http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Disposition", "attachment; filename="+kind.FileName())
		h.Set("Cache-Control", "must-revalidate")
		h.Set("Pragma", "must-revalidate")
		h.Set("Content-Type", "application/csv")
		h.Set("Content-Length", strconv.Itoa(len(body)))
		if n := len(run.Failures); n > 0 {
			h.Set(SkippedRowsHeader, strconv.Itoa(n))
			for _, f := range run.Failures {
				logger.Warn("row skipped", "row", f.Row, "key", f.Key, "step", f.Step, "reason", f.Reason)
			}
		}

		if _, err := w.Write(body); err != nil {
			logger.Debug("client went away", "error", err)
			return
		}

		logger.Info("report served",
			"rows", run.Table.Len(),
			"skipped", len(run.Failures),
			"elapsed", time.Since(start),
		)
	}
}

// statusFor maps a computation error to an HTTP status.
// Failures of the remote form service are the gateway's fault.
func statusFor(err error) int {
	var remote *model.RemoteFetchError
	var schema *model.SchemaMismatchError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &remote), errors.As(err, &schema):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "request cancelled"
	}
	var schema *model.SchemaMismatchError
	if errors.As(err, &schema) {
		return fmt.Sprintf("%s form export is missing field %q", schema.Form, schema.Field)
	}
	var remote *model.RemoteFetchError
	if errors.As(err, &remote) {
		if errors.Is(err, model.ErrAuthentication) {
			return "form service rejected the login"
		}
		return "form service unavailable"
	}
	return "internal error"
}
