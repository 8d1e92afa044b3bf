package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sparklines/pkg/cache"
	"github.com/matzehuels/sparklines/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	})
	srv := httptest.NewServer(newServer(pipeline.NewRunner(fc, logger), logger, metrics))
	t.Cleanup(srv.Close)
	return srv
}

func TestServeQuery(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"svg", "/sparkline.svg?values=1,3,,-4&width=120&height=30", http.StatusOK, "image/svg+xml", `width="120"`},
		{"json", "/sparkline.json?values=1,2,3", http.StatusOK, "application/json", `"points"`},
		{"preset", "/sparkline.svg?values=1,-1,1&preset=winloss", http.StatusOK, "image/svg+xml", "<rect"},
		{"hover script", "/sparkline.svg?values=1,2&hover=1", http.StatusOK, "image/svg+xml", "<script"},
		{"missing values", "/sparkline.svg", http.StatusBadRequest, "application/json", "INVALID_INPUT"},
		{"bad format", "/sparkline.gif?values=1", http.StatusBadRequest, "application/json", "INVALID_FORMAT"},
		{"bad number", "/sparkline.svg?values=1&width=wide", http.StatusBadRequest, "application/json", "invalid number"},
		{"bad preset", "/sparkline.svg?values=1&preset=pie", http.StatusBadRequest, "application/json", "unknown preset"},
		{"render error", "/sparkline.svg?values=1,abc", http.StatusUnprocessableEntity, "application/json", `"kind":"ValueError"`},
		{"settings error", "/sparkline.svg?values=1&height=9000", http.StatusUnprocessableEntity, "application/json", "INVALID_CONFIGURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q: %s", tt.contains, body)
			}
		})
	}
}

func TestServeCacheHeader(t *testing.T) {
	srv := newTestServer(t)
	get := func() string {
		resp, err := http.Get(srv.URL + "/sparkline.svg?values=4,5,6")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.Header.Get("X-Sparkline-Cache")
	}
	if got := get(); got != "miss" {
		t.Errorf("first request cache = %q, want miss", got)
	}
	if got := get(); got != "hit" {
		t.Errorf("second request cache = %q, want hit", got)
	}
}

func TestServeBody(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		status   int
		contains string
	}{
		{
			name:     "line chart",
			body:     `{"settings": {"width": 90, "line": {"dots": {}}}, "values": [1, {"label": "b", "value": 2}, null, 4]}`,
			status:   http.StatusOK,
			contains: `data-x-label="b"`,
		},
		{
			name:     "json format",
			body:     `{"values": [1, 2], "format": "json"}`,
			status:   http.StatusOK,
			contains: `"points"`,
		},
		{"malformed body", `{"values": `, http.StatusBadRequest, "malformed request body"},
		{"unknown field", `{"values": [1], "colour": "red"}`, http.StatusBadRequest, "malformed request body"},
		{"no values", `{"settings": {}}`, http.StatusBadRequest, "values are required"},
		{"values not an array", `{"values": {"a": 1}}`, http.StatusUnprocessableEntity, "values must be an array"},
		{"unknown settings key", `{"settings": {"colour": "red"}, "values": [1]}`, http.StatusUnprocessableEntity, "INVALID_CONFIGURATION"},
		{"win/loss with line", `{"settings": {"line": {}, "bars": {"isWinLoss": true}}, "values": [1]}`, http.StatusUnprocessableEntity, "INVALID_CONFIGURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/sparkline", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q: %s", tt.contains, body)
			}
		})
	}
}

func TestServeErrorBody(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/sparkline.svg?values=1,abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e.Code != "INVALID_VALUE" || !strings.Contains(e.Error, "abc") {
		t.Errorf("error body = %+v", e)
	}
	if strings.HasPrefix(e.Error, "INVALID_VALUE") {
		t.Error("message should not carry the code prefix")
	}
}

func TestServeHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	for path, want := range map[string]string{"/healthz": "ok", "/metrics": "# metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), want) {
			t.Errorf("%s = %d %q", path, resp.StatusCode, body)
		}
	}
}
