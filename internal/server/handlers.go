package server

import (
	"encoding/json"
	"net/http"

	"github.com/astroviz/starplot/pkg/buildinfo"
	apperrors "github.com/astroviz/starplot/pkg/errors"
	"github.com/astroviz/starplot/pkg/observability"
	"github.com/astroviz/starplot/pkg/pipeline"
	"github.com/astroviz/starplot/pkg/render/scatter/styles"
)

// Content types per artifact format.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// plotResponse is the multi-format envelope. Artifact bytes are base64 in
// JSON per encoding/json's []byte handling.
type plotResponse struct {
	FigureHash string            `json:"figure_hash,omitempty"`
	Cached     bool              `json:"cached"`
	Artifacts  map[string][]byte `json:"artifacts"`
	Stats      map[string]any    `json:"stats,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleColormaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"colormaps": styles.Names()})
}

func (s *Server) handlePlots(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	opts.Logger = s.logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid plot options"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// A single requested format returns the artifact bytes directly.
	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	writeJSON(w, http.StatusOK, plotResponse{
		FigureHash: result.FigureHash,
		Cached:     result.CacheInfo.NormalizeHit && result.CacheInfo.RenderHit,
		Artifacts:  result.Artifacts,
		Stats: map[string]any{
			"datasets":        result.Stats.DatasetCount,
			"points":          result.Stats.PointCount,
			"normalize_ms":    result.Stats.NormalizeTime.Milliseconds(),
			"render_ms":       result.Stats.RenderTime.Milliseconds(),
			"normalize_cache": result.CacheInfo.NormalizeHit,
			"render_cache":    result.CacheInfo.RenderHit,
		},
	})
}

// writeError maps structured error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidDataset,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidMarker,
		apperrors.ErrCodeInvalidConfig, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeEmptyUnion, apperrors.ErrCodeDegenerateRange:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Error("request failed",
		"status", status,
		"code", code,
		"error", err,
		"request_id", requestIDFrom(r.Context()))

	writeJSON(w, status, errorResponse{
		Error:     apperrors.UserMessage(err),
		Code:      string(code),
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
