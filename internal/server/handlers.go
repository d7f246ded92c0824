package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sheetgraph/pkg/buildinfo"
	"github.com/matzehuels/sheetgraph/pkg/core/evaluate"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/errors"
	"github.com/matzehuels/sheetgraph/pkg/io"
	"github.com/matzehuels/sheetgraph/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// MetricInfo describes one fitness metric and its configured weight.
type MetricInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

func (s *Server) metricInfos() []MetricInfo {
	metrics := rater.Metrics()
	out := make([]MetricInfo, len(metrics))
	for i, m := range metrics {
		out[i] = MetricInfo{Name: string(m), Description: m.Description(), Weight: s.config.Weights[i]}
	}
	return out
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metricInfos())
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, m := range s.metricInfos() {
		if m.Name == name {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown metric %q", name))
}

// handleDetect reads a sheet document and returns the detection result.
// Query parameters:
//   - strategy: auto, exhaustive or genetic
//   - refresh: skip cached results when true
//
// Explicit exhaustive requests over more than exhaustive_max_edges edges
// are rejected with INVALID_INPUT.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	sheet, err := io.ReadJSON(r.Body)
	if err != nil {
		writeError(w, r, bodyError(err))
		return
	}
	if n := len(sheet.Regions()); n > s.maxRegions {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "sheet has %d regions, limit is %d", n, s.maxRegions))
		return
	}

	opts := pipeline.Options{
		Strategy: r.URL.Query().Get("strategy"),
		Config:   s.config,
		Logger:   s.logger.With("request_id", RequestID(r.Context())),
	}
	if v := r.URL.Query().Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "refresh"))
			return
		}
		opts.Refresh = refresh
	}

	res, err := s.runner.Detect(r.Context(), sheet, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Result)
}

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Truth    []region.BoundingBox `json:"truth"`
	Detected []region.BoundingBox `json:"detected"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, bodyError(errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")))
		return
	}
	if n := len(req.Truth) + len(req.Detected); n > s.maxTables {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request has %d tables, limit is %d", n, s.maxTables))
		return
	}
	for _, set := range [][]region.BoundingBox{req.Truth, req.Detected} {
		for _, b := range set {
			if err := b.Validate(); err != nil {
				writeError(w, r, errors.Wrap(errors.ErrCodeInvalidRegion, err, "table"))
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, evaluate.Evaluate(req.Truth, req.Detected))
}

// bodyError reports oversized bodies as invalid input.
func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", maxErr.Limit)
	}
	return err
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errors.New(errors.ErrCodeMethodNotAllowed, "%s not allowed on %s", method, path)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error:     errorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
