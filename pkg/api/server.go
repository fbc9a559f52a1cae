// Package api exposes the layout pipeline over HTTP.
//
// The server wraps a [pipeline.Runner] and serves a small JSON API:
//
//	GET  /api/v1/health  - liveness probe
//	POST /api/v1/layout  - run the parse → layout → export pipeline
//
// Layout requests carry the molecule content inline; the server never reads
// files from its own filesystem on behalf of a client.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/molviz/molforge/pkg/buildinfo"
	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/pipeline"
)

// Server handles HTTP requests for the layout pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server around a pipeline runner.
// If logger is nil, the default logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/layout", s.handleLayout)
	})

	return r
}

// HealthResponse is the body of a health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// LayoutRequest is the body of a layout request. It mirrors
// [pipeline.Options] but restricts input to inline content.
type LayoutRequest struct {
	Content  string   `json:"content"`
	Format   string   `json:"format"`
	Name     string   `json:"name,omitempty"`
	Record   int      `json:"record,omitempty"`
	Seed     uint64   `json:"seed,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`
}

// LayoutResponse is the body of a successful layout response.
// Artifact bytes are base64-encoded by the standard JSON encoder.
type LayoutResponse struct {
	Name      string             `json:"name"`
	MolHash   string             `json:"mol_hash"`
	AtomCount int                `json:"atom_count"`
	BondCount int                `json:"bond_count"`
	Artifacts map[string][]byte  `json:"artifacts"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Content == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "content is required"))
		return
	}
	if err := pipeline.ValidateInputFormat(req.Format); err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Content:  req.Content,
		Format:   req.Format,
		Name:     req.Name,
		Record:   req.Record,
		Seed:     req.Seed,
		Width:    req.Width,
		Height:   req.Height,
		Formats:  req.Formats,
		Detailed: req.Detailed,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Error("layout request failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		Name:      result.Molecule.Name,
		MolHash:   result.MolHash,
		AtomCount: result.Stats.AtomCount,
		BondCount: result.Stats.BondCount,
		Artifacts: result.Artifacts,
		CacheInfo: result.CacheInfo,
	})
}
