package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/algotrace/pkg/algorithms"
	"github.com/matzehuels/algotrace/pkg/buildinfo"
	"github.com/matzehuels/algotrace/pkg/engine"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/listing"
	"github.com/matzehuels/algotrace/pkg/render/dot"
	"github.com/matzehuels/algotrace/pkg/trace"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, algorithms.All())
}

func (s *Server) handleAlgorithm(w http.ResponseWriter, r *http.Request) {
	info, err := algorithms.Describe(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type codeResponse struct {
	Algorithm string   `json:"algorithm"`
	Lines     []string `json:"lines"`
}

// handleCode serves the listing. Unknown names get the placeholder listing,
// not an error.
func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeJSON(w, http.StatusOK, codeResponse{Algorithm: name, Lines: listing.Lookup(name)})
}

// executionRequest is the body of POST /api/v1/executions.
type executionRequest struct {
	Algorithm string       `json:"algorithm" validate:"required,max=64"`
	Start     string       `json:"start,omitempty" validate:"max=256"`
	End       string       `json:"end,omitempty" validate:"max=256"`
	Directed  bool         `json:"directed,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`
	Graph     requestGraph `json:"graph"`
}

// requestGraph bounds graph size; Floyd-Warshall is cubic in the node count.
type requestGraph struct {
	Nodes []graph.Node `json:"nodes" validate:"max=500"`
	Edges []graph.Edge `json:"edges" validate:"max=5000"`
}

func (req executionRequest) options() engine.Options {
	return engine.Options{
		Algorithm: req.Algorithm,
		Params: algorithms.Params{
			Start:    req.Start,
			End:      req.End,
			Directed: req.Directed,
		},
		Refresh: req.Refresh,
	}
}

func (req executionRequest) data() graph.Data {
	return graph.Data{Nodes: req.Graph.Nodes, Edges: req.Graph.Edges}
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executionRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Run(r.Context(), req.data(), req.options())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	writeJSON(w, http.StatusOK, res.Execution)
}

// frameRequest is the body of POST /api/v1/frames.
type frameRequest struct {
	executionRequest
	// Step is the index of the last applied step; -1 renders the input graph.
	Step   int    `json:"step" validate:"gte=-1"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=dot svg"`
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	var req frameRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	d := req.data()
	res, err := s.runner.Run(r.Context(), d, req.options())
	if err != nil {
		writeError(w, err)
		return
	}
	steps := res.Execution.Steps
	if req.Step >= len(steps) {
		writeError(w, invalidInput("step %d out of range (execution has %d steps)", req.Step, len(steps)))
		return
	}

	opts := dot.Options{Directed: directed(req.Algorithm, req.Directed), Weights: true}
	if req.Step >= 0 {
		opts.Caption = steps[req.Step].Description
	}
	frame := trace.Replay(d, steps[:req.Step+1])

	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	if req.Format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(dot.ToDOT(frame, opts)))
		return
	}
	svg, err := dot.SVG(frame, opts)
	if err != nil {
		writeError(w, internal(err, "render frame"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return invalidBody(err)
	}
	if err := s.validate.Struct(v); err != nil {
		return invalidRequest(err)
	}
	return nil
}

// directed reports whether an algorithm follows edge direction.
func directed(name string, requested bool) bool {
	info, err := algorithms.Describe(name)
	if err != nil {
		return requested
	}
	return info.Directed || requested
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
