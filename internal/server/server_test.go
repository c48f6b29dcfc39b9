package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/observability"
	"github.com/matzehuels/instantview/pkg/pipeline"
	"github.com/matzehuels/instantview/pkg/view"
)

const pageJSON = `{
  "url": "https://example.com/a",
  "blocks": [
    {"type": "title", "text": "Hello"},
    {"type": "paragraph", "text": "World"},
    {"type": "divider"}
  ]
}`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(cfg, pipeline.NewRunner(c, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info["version"] == "" || info["go_version"] == "" {
		t.Errorf("version = %v", info)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, body := post(t, srv.URL+"/v1/layout?width=390", "application/json", pageJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if id := resp.Header.Get(HeaderRequestID); len(id) != 36 {
		t.Errorf("request id = %q, want a UUID", id)
	}
	if resp.Header.Get(HeaderCache) != "miss" || resp.Header.Get(HeaderPassID) == "" {
		t.Errorf("cache = %q pass = %q", resp.Header.Get(HeaderCache), resp.Header.Get(HeaderPassID))
	}
	l, err := view.UnmarshalLayout(body)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 390 || l.Count(view.TypeText) != 2 {
		t.Errorf("layout = %+v", l)
	}

	resp, _ = post(t, srv.URL+"/v1/layout?width=390", "application/json", pageJSON)
	if resp.Header.Get(HeaderCache) != "hit" {
		t.Errorf("second request cache = %q", resp.Header.Get(HeaderCache))
	}
}

func TestLayoutTOML(t *testing.T) {
	srv := newTestServer(t, Config{})
	doc := "[[blocks]]\ntype = \"title\"\ntext = \"Hi\"\n"
	resp, body := post(t, srv.URL+"/v1/layout", "application/toml; charset=utf-8", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	l, err := view.UnmarshalLayout(body)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != pipeline.DefaultWidth || len(l.Items) != 1 {
		t.Errorf("layout = %+v", l)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, _ := post(t, srv.URL+"/v1/layout", "application/json", pageJSON, HeaderRequestID, "abc-123")
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, Config{})
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, body := post(t, srv.URL+"/v1/render/"+tt.format+"?labels=true", "application/json", pageJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("content type = %q", ct)
			}
			if !strings.HasPrefix(string(body), tt.prefix) {
				t.Errorf("body starts with %.20q", body)
			}
		})
	}
}

func TestRenderRasterPNG(t *testing.T) {
	srv := newTestServer(t, Config{})
	resp, body := post(t, srv.URL+"/v1/render/png?raster=true&scale=1", "application/json", pageJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(string(body), "\x89PNG") {
		t.Error("not a png")
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, Config{MaxBodyBytes: 1024})
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"unknown format", "/v1/render/gif", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad document", "/v1/layout", `{"blocks": [{"text": "x"}]}`, http.StatusBadRequest, errors.ErrCodeInvalidDocument},
		{"empty body", "/v1/layout", ``, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad width", "/v1/layout?width=wide", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"zero width", "/v1/layout?width=-5", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidWidth},
		{"bad flag", "/v1/render/svg?labels=maybe", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"theme file", "/v1/layout?theme=/etc/theme.toml", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidTheme},
		{"unknown theme", "/v1/layout?theme=sepia", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidTheme},
		{"bad metrics", "/v1/layout?metrics=magic", pageJSON, http.StatusBadRequest, errors.ErrCodeInvalidMetrics},
		{"too large", "/v1/layout", `{"blocks": [], "url": "` + strings.Repeat("x", 2048) + `"}`, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var eb errorBody
			if err := json.Unmarshal(body, &eb); err != nil {
				t.Fatalf("error body: %v", err)
			}
			if eb.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", eb.Error.Code, tt.code)
			}
			if eb.Error.RequestID == "" {
				t.Error("error body lacks the request id")
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "no rsvg-convert"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeBackend, "redis down"), http.StatusServiceUnavailable},
		{fmt.Errorf("render: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got, _ := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, fmt.Sprintf("%s %s %d", method, route, status))
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, Config{})
	post(t, srv.URL+"/v1/render/svg", "application/json", pageJSON)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 || hooks.routes[0] != "POST /v1/render/{format} 200" {
		t.Errorf("routes = %v", hooks.routes)
	}
}
