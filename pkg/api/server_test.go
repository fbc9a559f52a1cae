package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/molviz/molforge/pkg/pipeline"
)

const waterJSON = `{
  "name": "water",
  "atoms": [
    {"id": "o1", "element": "O", "x": 0, "y": 0, "z": 0},
    {"id": "h1", "element": "H", "x": 1, "y": 0, "z": 0},
    {"id": "h2", "element": "H", "x": 0, "y": 1, "z": 0}
  ],
  "bonds": [
    {"from": "o1", "to": "h1", "order": 1},
    {"from": "o1", "to": "h2", "order": 1}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(NewServer(runner, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
}

func postLayout(t *testing.T, srv *httptest.Server, req LayoutRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(srv.URL+"/api/v1/layout", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /layout: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)

	resp := postLayout(t, srv, LayoutRequest{
		Content: waterJSON,
		Format:  "json",
		Formats: []string{"json", "dot"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Name != "water" {
		t.Errorf("name = %q, want %q", body.Name, "water")
	}
	if body.AtomCount != 3 || body.BondCount != 2 {
		t.Errorf("got %d atoms / %d bonds, want 3 / 2", body.AtomCount, body.BondCount)
	}
	if body.MolHash == "" {
		t.Error("mol_hash should be set")
	}
	if len(body.Artifacts["json"]) == 0 {
		t.Error("missing json artifact")
	}
	if !strings.HasPrefix(string(body.Artifacts["dot"]), "graph G {") {
		t.Error("dot artifact should be Graphviz source")
	}
}

func TestLayoutMissingContent(t *testing.T) {
	srv := newTestServer(t)

	resp := postLayout(t, srv, LayoutRequest{Format: "json"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
}

func TestLayoutInvalidFormat(t *testing.T) {
	srv := newTestServer(t)

	resp := postLayout(t, srv, LayoutRequest{Content: waterJSON, Format: "pdb"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", body.Code)
	}
}

func TestLayoutMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/layout", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /layout: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLayoutDeterministicHash(t *testing.T) {
	srv := newTestServer(t)

	first := postLayout(t, srv, LayoutRequest{Content: waterJSON, Format: "json", Seed: 7})
	second := postLayout(t, srv, LayoutRequest{Content: waterJSON, Format: "json", Seed: 7})

	var a, b LayoutResponse
	if err := json.NewDecoder(first.Body).Decode(&a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.NewDecoder(second.Body).Decode(&b); err != nil {
		t.Fatalf("decode second: %v", err)
	}

	if a.MolHash != b.MolHash {
		t.Error("identical inputs should hash identically")
	}
	if !bytes.Equal(a.Artifacts["json"], b.Artifacts["json"]) {
		t.Error("identical seeded runs should produce identical layouts")
	}
}
