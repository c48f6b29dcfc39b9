package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/instantview/pkg/buildinfo"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/pipeline"
)

// Response headers describing a pipeline run.
const (
	HeaderCache  = "X-Cache"
	HeaderPassID = "X-Pass-ID"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatJSON)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, chi.URLParam(r, "format"))
}

func (s *Server) serveFormat(w http.ResponseWriter, r *http.Request, format string) {
	if err := errors.ValidateFormat(format, pipeline.Formats...); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.requestOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cache := "miss"
	if res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set(HeaderCache, cache)
	w.Header().Set(HeaderPassID, res.PassID)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// requestOptions reads the body and query into pipeline options.
func (s *Server) requestOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return pipeline.Options{}, err
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Source:             "request",
		Document:           body,
		DocumentFormat:     documentFormat(r.Header.Get("Content-Type")),
		Metrics:            q.Get("metrics"),
		Theme:              q.Get("theme"),
		AuthorDateTemplate: q.Get("author_date_template"),
		Logger:             s.logger.With("request", RequestIDFrom(r.Context())),
	}
	if pipeline.IsThemeFile(opts.Theme) {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidTheme, "theme files are not accepted, use a preset name")
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"max_content_width", &opts.MaxContentWidth},
		{"scale", &opts.Scale},
		{"grid", &opts.Grid},
	}
	for _, f := range floats {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", f.name, v)
			}
			*f.dst = n
		}
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"labels", &opts.Labels},
		{"fonts", &opts.Fonts},
		{"raster", &opts.Raster},
		{"detailed", &opts.Detailed},
		{"refresh", &opts.Refresh},
	}
	for _, f := range flags {
		if v := q.Get(f.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", f.name, v)
			}
			*f.dst = b
		}
	}
	return opts, nil
}

func documentFormat(contentType string) string {
	mt, _, _ := mime.ParseMediaType(contentType)
	if mt == "application/toml" {
		return pipeline.DocumentTOML
	}
	return pipeline.DocumentJSON
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
