// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the HTTP front end for rhyme queries.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-rhymer"
	"github.com/ianlewis/go-rhymer/index"
)

// Loader builds a new index for a reload.
type Loader func(ctx context.Context) (*index.Index, error)

// Options are options for a Server.
type Options struct {
	// MaxResults is the per-tier limit used when a query does not specify
	// one.
	MaxResults int

	// Loader rebuilds the index for POST /reload. The reload endpoint is
	// disabled if nil.
	Loader Loader

	// Logger receives request logs. Nothing is logged if nil.
	Logger *slog.Logger

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultOptions is the default options for a Server.
var DefaultOptions = &Options{
	MaxResults:      rhymer.Unlimited,
	ReadTimeout:     10 * time.Second,
	WriteTimeout:    30 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}

// Server serves rhyme queries over HTTP.
type Server struct {
	rhymer *rhymer.Rhymer
	opts   Options
	logger *slog.Logger
	router *mux.Router

	// reloadMu serializes reloads.
	reloadMu sync.Mutex
}

// New returns a new Server answering queries with r.
func New(r *rhymer.Rhymer, opts *Options) *Server {
	if opts == nil {
		opts = DefaultOptions
	}
	s := &Server{
		rhymer: r,
		opts:   *opts,
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.opts.ShutdownTimeout <= 0 {
		s.opts.ShutdownTimeout = DefaultOptions.ShutdownTimeout
	}

	s.router = mux.NewRouter()
	s.router.HandleFunc("/rhymes/{word}", s.handleRhymes).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.opts.Loader != nil {
		s.router.HandleFunc("/reload", s.handleReload).Methods(http.MethodPost)
	}
	s.router.Use(s.logRequests)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is canceled. The server is then
// shut down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled. The server is then shut down
// gracefully. ln is closed when Serve returns.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		// Requests in flight are drained by Shutdown rather than canceled.
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.InfoContext(ctx, "server started", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()

		s.logger.InfoContext(shutdownCtx, "shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	//nolint:wrapcheck // errors are wrapped by the goroutines.
	return g.Wait()
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}

type reloadResponse struct {
	Words    int    `json:"words"`
	Duration string `json:"duration"`
}

func (s *Server) handleRhymes(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	maxResults := s.opts.MaxResults
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < rhymer.Unlimited {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("invalid max: %q", v),
			})
			return
		}
		maxResults = n
	}

	results := s.rhymer.Query(word, maxResults)
	if results == nil {
		results = []*rhymer.Result{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if idx := s.rhymer.Index(); idx != nil {
		resp.Words = idx.Len()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	idx, err := s.opts.Loader(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "reload failed", slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.rhymer.Load(idx)

	duration := time.Since(start)
	s.logger.InfoContext(r.Context(), "index reloaded",
		slog.Int("words", idx.Len()),
		slog.Duration("duration", duration),
	)
	s.writeJSON(w, http.StatusOK, reloadResponse{
		Words:    idx.Len(),
		Duration: duration.String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", slog.Any("error", err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		level := slog.LevelInfo
		if sw.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.LogAttrs(r.Context(), level, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// statusWriter records the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
