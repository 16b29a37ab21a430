package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wiretrace/wiretrace/pkg/buildinfo"
	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/errors"
	"github.com/wiretrace/wiretrace/pkg/pipeline"
)

// maxBodyBytes bounds request bodies; circuit descriptions are small text.
const maxBodyBytes = 1 << 20

// renderRequest is the JSON body for /api/render and /api/parse. Raw
// text/plain bodies are accepted too and treated as Text with defaults.
type renderRequest struct {
	Text        string  `json:"text"`
	Format      string  `json:"format,omitempty"`
	Zoom        float64 `json:"zoom,omitempty"`
	Strict      bool    `json:"strict,omitempty"`
	NoGrid      bool    `json:"no_grid,omitempty"`
	GridSpacing float64 `json:"grid_spacing,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// handleRender renders circuit text and responds with the artifact bytes.
// Diagnostics for degraded output travel in the X-Wiretrace-Diagnostics
// header as a count; /api/validate reports them in full.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Text:        req.Text,
		Strict:      req.Strict,
		Formats:     []string{format},
		Zoom:        req.Zoom,
		NoGrid:      req.NoGrid,
		GridSpacing: req.GridSpacing,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pipeline.FileName(format)))
	w.Header().Set("X-Wiretrace-Diagnostics", fmt.Sprint(len(result.Diagnostics)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// validateResponse is the JSON body for /api/validate.
type validateResponse struct {
	Valid       bool                 `json:"valid"`
	Diagnostics []circuit.Diagnostic `json:"diagnostics"`
	Errors      int                  `json:"errors"`
	Warnings    int                  `json:"warnings"`
}

// handleValidate runs full-text validation and reports every diagnostic.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	diags := circuit.Validate(req.Text)

	resp := validateResponse{
		Valid:       !circuit.HasErrors(diags),
		Diagnostics: diags,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []circuit.Diagnostic{}
	}
	for _, d := range diags {
		switch d.Severity {
		case circuit.SeverityError:
			resp.Errors++
		case circuit.SeverityWarning:
			resp.Warnings++
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleParse returns the parsed circuit model as JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	mode := circuit.Lenient
	if req.Strict {
		mode = circuit.Strict
	}
	c, err := circuit.ParseMode(req.Text, mode)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleHealthz reports liveness and build info.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// decodeRequest reads a render request from either a JSON or plain-text body.
func decodeRequest(r *http.Request) (renderRequest, error) {
	var req renderRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, fmt.Errorf("decode request: %w", err)
		}
		return req, nil
	}

	req.Text = string(body)
	return req, nil
}

// statusFor maps pipeline error codes onto HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeEmptyInput, errors.ErrCodeNoComponents,
		errors.ErrCodeInvalidSyntax, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidZoom:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}
