// Package server exposes a directory of project scheduling instances over HTTP.
//
// The server decodes instance files on demand and serves their JSON encoding
// and precedence graphs:
//
//	GET /healthz                        liveness probe
//	GET /api/instances                  list available instance files
//	GET /api/instances/{name}           JSON encoding of an instance
//	GET /api/instances/{name}/graph     precedence graph in DOT format
//
// Both PSPLIB (.sm) and JSON instance files are served. Errors are returned
// as JSON with the error code and a status derived from it.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/graph"
	"github.com/psptools/psplib/pkg/instance"
	pkgio "github.com/psptools/psplib/pkg/io"
	"github.com/psptools/psplib/pkg/psplib"
)

// Server serves instances from a directory.
type Server struct {
	dir    string
	logger *log.Logger
}

// New creates a server for the given instance directory.
func New(dir string, logger *log.Logger) *Server {
	return &Server{dir: dir, logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/instances", s.handleList)
	r.Get("/api/instances/{name}", s.handleInstance)
	r.Get("/api/instances/{name}/graph", s.handleGraph)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleList returns the names of instance files in the served directory.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "failed to read instance directory"))
		return
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".sm", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	writeJSON(w, http.StatusOK, map[string]any{"instances": names})
}

// handleInstance returns the JSON encoding of a single instance.
func (s *Server) handleInstance(w http.ResponseWriter, r *http.Request) {
	in, err := s.load(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := pkgio.Marshal(in, pkgio.DefaultIndent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleGraph returns the precedence graph of an instance in DOT format.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	in, err := s.load(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dot := graph.ToDOT(graph.FromInstance(in))
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(dot))
}

// load resolves name inside the served directory and decodes the file.
// Path traversal outside the directory is rejected.
func (s *Server) load(name string) (*instance.Instance, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid instance name: %s", name)
	}

	path := filepath.Join(s.dir, name)
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return pkgio.ImportJSON(path)
	}
	return psplib.DecodeFile(path, name)
}

// writeError maps an error code to an HTTP status and writes a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeParse, errors.ErrCodeConversion, errors.ErrCodeValidation, errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	s.logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
