// Package api exposes the conversion pipeline over HTTP.
//
// Endpoints:
//
//	POST /v1/convert?from=<ext>&to=<ext>   body: the document to convert
//	GET  /v1/formats                       list registered formats
//
// Conversion goes through pipeline.ConvertBytes, so the API and the CLI
// share one code path. Every response carries an X-Request-Id header.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fileconv/fileconv/pkg/buildinfo"
	"github.com/fileconv/fileconv/pkg/dump"
	"github.com/fileconv/fileconv/pkg/load"
	"github.com/fileconv/fileconv/pkg/pipeline"
)

// maxBodyBytes caps request bodies. Converted documents are single files
// edited by a human; anything larger is a mistake.
const maxBodyBytes = 16 << 20

// contentTypes maps target extensions to response content types.
var contentTypes = map[string]string{
	"json":  "application/json",
	"yaml":  "application/yaml",
	"plist": "application/x-plist",
	"toml":  "application/toml",
}

// Server is the HTTP front end for the conversion pipeline.
type Server struct {
	logger *log.Logger
	router chi.Router
}

// New returns a Server logging through the given logger.
func New(logger *log.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Post("/v1/convert", s.handleConvert)
	r.Get("/v1/formats", s.handleFormats)
	r.Get("/v1/version", s.handleVersion)
	s.router = r

	return s
}

// Handler returns the routing handler, for mounting or for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags every request with a UUID and logs its outcome.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	out, err := pipeline.ConvertBytes(body, from, to)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, load.ErrUnknownFormat) || errors.Is(err, dump.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	if ct, ok := contentTypes[to]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Write(out)
}

type formatInfo struct {
	Name   string `json:"name"`
	Ext    string `json:"ext"`
	Input  bool   `json:"input"`
	Output bool   `json:"output"`
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	loaders := load.NewRegistry()
	dumpers := dump.NewRegistry()

	seen := map[string]*formatInfo{}
	for ext, l := range loaders {
		seen[ext] = &formatInfo{Name: l.Name(), Ext: ext, Input: true}
	}
	for ext, factory := range dumpers {
		if fi, ok := seen[ext]; ok {
			fi.Output = true
			continue
		}
		seen[ext] = &formatInfo{Name: factory().Name(), Ext: ext, Output: true}
	}

	out := make([]formatInfo, 0, len(seen))
	for _, fi := range seen {
		out = append(out, *fi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ext < out[j].Ext })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
