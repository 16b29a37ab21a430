package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wiretrace/wiretrace/pkg/circuit"
)

const testCircuit = `R1: resistor 330
LED1: led
R1 -> LED1`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New("", nil, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestRenderPlainText(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/render", "text/plain", strings.NewReader(testCircuit))
	if err != nil {
		t.Fatalf("POST /api/render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "circuit-diagram.svg") {
		t.Errorf("Content-Disposition = %q, want circuit-diagram.svg", cd)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("response should carry a request ID")
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("<svg")) {
		t.Errorf("body should start with <svg, got %.20s", buf.String())
	}
}

func TestRenderJSONFormats(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		format   string
		wantType string
	}{
		{"svg", "image/svg+xml"},
		{"png", "image/png"},
		{"dot", "text/vnd.graphviz"},
		{"json", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			body, _ := json.Marshal(map[string]any{"text": testCircuit, "format": tt.format})
			resp, err := http.Post(srv.URL+"/api/render", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("POST /api/render: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.wantType)
			}
		})
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"text": testCircuit, "format": "tiff"})
	resp, err := http.Post(srv.URL+"/api/render", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/render", "text/plain", strings.NewReader("   "))
	if err != nil {
		t.Fatalf("POST /api/render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	var errBody errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Code != "EMPTY_INPUT" {
		t.Errorf("code = %q, want EMPTY_INPUT", errBody.Code)
	}
}

func TestRenderDiagnosticsHeader(t *testing.T) {
	srv := newTestServer(t)

	text := "R1: resistor\nR1 -> GHOST"
	resp, err := http.Post(srv.URL+"/api/render", "text/plain", strings.NewReader(text))
	if err != nil {
		t.Fatalf("POST /api/render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (degraded, not failed)", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Wiretrace-Diagnostics"); got != "1" {
		t.Errorf("X-Wiretrace-Diagnostics = %q, want 1", got)
	}
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t)

	text := "R1: resistor\nR1: led\nR1 -> GHOST\n???"
	resp, err := http.Post(srv.URL+"/api/validate", "text/plain", strings.NewReader(text))
	if err != nil {
		t.Fatalf("POST /api/validate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body.Valid {
		t.Error("circuit with errors should not be valid")
	}
	// duplicate name, dangling endpoint, invalid syntax
	if body.Errors != 3 {
		t.Errorf("Errors = %d, want 3 (%+v)", body.Errors, body.Diagnostics)
	}
}

func TestValidateCleanCircuit(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/validate", "text/plain", strings.NewReader(testCircuit))
	if err != nil {
		t.Fatalf("POST /api/validate: %v", err)
	}
	defer resp.Body.Close()

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Valid {
		t.Errorf("clean circuit should be valid: %+v", body.Diagnostics)
	}
	if body.Diagnostics == nil {
		t.Error("Diagnostics should encode as [], not null")
	}
}

func TestParse(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/parse", "text/plain", strings.NewReader(testCircuit))
	if err != nil {
		t.Fatalf("POST /api/parse: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var c circuit.Circuit
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(c.Components) != 2 || len(c.Connections) != 1 {
		t.Errorf("parsed %d components, %d connections; want 2, 1",
			len(c.Components), len(c.Connections))
	}
}

func TestRequestIDPropagated(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "test-id-123")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "test-id-123" {
		t.Errorf("request ID = %q, want test-id-123", got)
	}
}
