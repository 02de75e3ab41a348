package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/graphomics/debruijn/pkg/buildinfo"
	"github.com/graphomics/debruijn/pkg/debruijn"
	apperrors "github.com/graphomics/debruijn/pkg/errors"
	"github.com/graphomics/debruijn/pkg/pipeline"
	"github.com/graphomics/debruijn/pkg/store"
)

// buildRequest is the POST /v1/graphs body. Exactly one of Kmers or
// Sequence must be set; Sequence additionally requires K.
type buildRequest struct {
	Kmers      []string `json:"kmers,omitempty"`
	Sequence   string   `json:"sequence,omitempty"`
	K          int      `json:"k,omitempty"`
	Name       string   `json:"name,omitempty"`
	Permissive bool     `json:"permissive,omitempty"`
}

// graphSummary is a stored graph without its adjacency payload.
type graphSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	K         int       `json:"k"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// renderContentTypes maps API render formats to their content types.
// Raster formats are CLI-only; the API serves the textual ones.
var renderContentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.collector.Snapshot())
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := pipeline.Options{
		Kmers:      req.Kmers,
		Sequence:   req.Sequence,
		K:          req.K,
		Permissive: req.Permissive,
		Logger:     s.logger,
	}
	g, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := &store.StoredGraph{
		ID:        uuid.NewString(),
		Name:      req.Name,
		K:         g.K(),
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		Adjacency: g.Adjacency(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "persist graph"))
		return
	}

	s.logger.Info("stored graph", "id", doc.ID, "k", doc.K, "nodes", doc.Nodes, "edges", doc.Edges)
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	graphs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	summaries := make([]graphSummary, len(graphs))
	for i, g := range graphs {
		summaries[i] = graphSummary{
			ID:        g.ID,
			Name:      g.Name,
			K:         g.K,
			Nodes:     g.Nodes,
			Edges:     g.Edges,
			CreatedAt: g.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleRenderGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatText
	}
	contentType, ok := renderContentTypes[format]
	if !ok {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, dot, svg)", format))
		return
	}

	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, err := debruijn.FromAdjacency(doc.Adjacency)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "stored adjacency is invalid"))
		return
	}

	artifacts, err := s.runner.Render(r.Context(), g, pipeline.Options{
		Formats: []string{format},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
