package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
	"github.com/matzehuels/cloudgraph/pkg/graph"
	"github.com/matzehuels/cloudgraph/pkg/pipeline"
)

// layoutRequest is the envelope form of a request body.
type layoutRequest struct {
	Diagram json.RawMessage       `json:"diagram"`
	Options diagram.LayoutOptions `json:"options"`
	Refresh bool                  `json:"refresh"`
}

// validateResponse is the body returned by /v1/validate.
type validateResponse struct {
	Valid    bool               `json:"valid"`
	Errors   []string           `json:"errors"`
	Warnings []string           `json:"warnings"`
	Stats    diagram.Statistics `json:"stats"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	d, req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), d, pipeline.Options{
		Layout:  req.Options,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !pipeline.ValidFormats[format] {
		writeErrorCode(w, http.StatusNotFound, string(errors.ErrCodeUnsupported),
			fmt.Sprintf("unsupported format %q", format))
		return
	}

	d, req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := pipeline.Options{
		Layout:  req.Options,
		Refresh: req.Refresh,
		Formats: []string{format},
	}
	l, err := s.runner.Layout(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data := artifacts[format]
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	d, _, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))

	report := diagram.Lint(d, strict)
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:    report.Valid(),
		Errors:   nonNil(report.Errors),
		Warnings: nonNil(report.Warnings),
		Stats:    diagram.Stats(d),
	})
}

// decodeRequest accepts either an envelope or a bare diagram document.
func decodeRequest(r *http.Request) (*diagram.Diagram, layoutRequest, error) {
	var req layoutRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, req, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "request body is not a JSON object")
	}
	if _, ok := probe["diagram"]; !ok {
		d, err := graph.UnmarshalDiagram(body, graph.FormatJSON)
		return d, req, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request envelope")
	}
	d, err := graph.UnmarshalDiagram(req.Diagram, graph.FormatJSON)
	return d, req, err
}

// statusFor maps an error to an HTTP status by its category.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err), errors.IsStructural(err):
		return http.StatusUnprocessableEntity
	case errors.IsLayout(err):
		return http.StatusBadRequest
	case errors.GetCategory(err) == errors.CategoryIO:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeErrorCode(w, status, code, errors.UserMessage(err))
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
