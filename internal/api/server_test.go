package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func newTestServer() *Server {
	return New(log.New(io.Discard))
}

func TestConvertEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/convert?from=json&to=yaml", "application/json",
		strings.NewReader(`{"name": "demo", "count": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if id := resp.Header.Get("X-Request-Id"); id == "" {
		t.Error("missing X-Request-Id")
	} else if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-Id %q is not a UUID: %v", id, err)
	}

	body, _ := io.ReadAll(resp.Body)
	var back map[string]any
	if err := yaml.Unmarshal(body, &back); err != nil {
		t.Fatalf("response is not valid YAML: %v\n%s", err, body)
	}
	if back["name"] != "demo" {
		t.Errorf("name = %v", back["name"])
	}
}

func TestConvertEndpointUnknownFormat(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/convert?from=json&to=csv", "application/json",
		strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var e map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e["error"] == "" {
		t.Error("missing error message")
	}
}

func TestConvertEndpointMissingParams(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/convert", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestConvertEndpointBadDocument(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/convert?from=json&to=yaml", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestFormatsEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var formats []struct {
		Name   string `json:"name"`
		Ext    string `json:"ext"`
		Input  bool   `json:"input"`
		Output bool   `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&formats); err != nil {
		t.Fatal(err)
	}

	byExt := map[string]bool{}
	for _, f := range formats {
		byExt[f.Ext] = f.Input && f.Output
	}
	for _, ext := range []string{"json", "plist", "yaml", "toml"} {
		if !byExt[ext] {
			t.Errorf("format %q missing or not bidirectional: %v", ext, formats)
		}
	}
}
