package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/persistence"
)

func startTestServer(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	store := persistence.NewJSONStore(appdir.MapEnv{Vars: map[string]string{appdir.AppDataVar: root}})

	s := NewServer(NewStoreRegistry(store))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	baseURL, err := s.Start(ctx, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	return baseURL, filepath.Join(root, "ucanduit")
}

func invoke(t *testing.T, baseURL, command, body string) (int, []byte) {
	t.Helper()
	httpClient := http.Client{Timeout: 2 * time.Second}

	resp, err := httpClient.Post(baseURL+"/invoke/"+command, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to invoke %s: %v", command, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, data
}

func errorText(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode error response %q: %v", string(body), err)
	}
	return resp.Error
}

func TestServerWriteThenRead(t *testing.T) {
	baseURL, dir := startTestServer(t)

	status, body := invoke(t, baseURL, WriteJSONFile, `{"filename":"settings.json","data":{"theme":"dark","volume":0.5,"big":12345678901234567890}}`)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}
	if string(bytes.TrimSpace(body)) != "null" {
		t.Fatalf("expected null result, got %s", body)
	}

	if _, err := os.Stat(filepath.Join(dir, "settings.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	status, body = invoke(t, baseURL, ReadJSONFile, `{"filename":"settings.json"}`)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}
	if want := `{"big":12345678901234567890,"theme":"dark","volume":0.5}`; string(bytes.TrimSpace(body)) != want {
		t.Fatalf("expected %s, got %s", want, body)
	}
}

func TestServerReadMissing(t *testing.T) {
	baseURL, _ := startTestServer(t)

	status, body := invoke(t, baseURL, ReadJSONFile, `{"filename":"missing.json"}`)
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
	if got := errorText(t, body); got != "file does not exist: missing.json" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestServerReadCorrupt(t *testing.T) {
	baseURL, dir := startTestServer(t)

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("nope"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	status, _ := invoke(t, baseURL, ReadJSONFile, `{"filename":"bad.json"}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	baseURL, _ := startTestServer(t)

	cases := []struct {
		command string
		body    string
		status  int
	}{
		{"delete_everything", `{}`, http.StatusNotFound},
		{WriteJSONFile, `not json`, http.StatusBadRequest},
		{WriteJSONFile, ``, http.StatusBadRequest},
		{WriteJSONFile, `{"filename":"../../etc/passwd","data":1}`, http.StatusBadRequest},
		{ReadJSONFile, `{"filename":""}`, http.StatusBadRequest},
		{WriteJSONFile, `{"filename":"config.yaml","data":{"log":{"level":"panic"}}}`, http.StatusBadRequest},
		{WriteJSONFile, `{"filename":"ucanduit.db","data":{"x":1}}`, http.StatusBadRequest},
		{ReadJSONFile, `{"filename":"config.yaml"}`, http.StatusBadRequest},
	}

	for _, c := range cases {
		status, body := invoke(t, baseURL, c.command, c.body)
		if status != c.status {
			t.Errorf("%s %q: expected status %d, got %d", c.command, c.body, c.status, status)
			continue
		}
		if errorText(t, body) == "" {
			t.Errorf("%s %q: expected error text", c.command, c.body)
		}
	}
}

func TestServerHealthAndCORS(t *testing.T) {
	baseURL, _ := startTestServer(t)
	httpClient := http.Client{Timeout: 2 * time.Second}

	resp, err := httpClient.Get(baseURL + "/health")
	if err != nil {
		t.Fatalf("failed to request health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodOptions, baseURL+"/invoke/"+WriteJSONFile, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err = httpClient.Do(req)
	if err != nil {
		t.Fatalf("failed to send preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

func TestServerStopsOnContextCancel(t *testing.T) {
	store := persistence.NewJSONStore(appdir.MapEnv{Vars: map[string]string{appdir.AppDataVar: t.TempDir()}})
	s := NewServer(NewStoreRegistry(store))
	ctx, cancel := context.WithCancel(context.Background())

	baseURL, err := s.Start(ctx, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	cancel()

	httpClient := http.Client{Timeout: 200 * time.Millisecond}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/health")
		if err != nil {
			return
		}
		resp.Body.Close()
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server still serving after context cancel")
}

func TestServerRejectsOversizedBody(t *testing.T) {
	root := t.TempDir()
	store := persistence.NewJSONStore(appdir.MapEnv{Vars: map[string]string{appdir.AppDataVar: root}})

	s := NewServer(NewStoreRegistry(store))
	s.maxBody = 64
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	baseURL, err := s.Start(ctx, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	body := `{"filename":"big.json","data":"` + strings.Repeat("x", 128) + `"}`
	status, resp := invoke(t, baseURL, WriteJSONFile, body)
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", status)
	}
	if errorText(t, resp) == "" {
		t.Fatalf("expected error text")
	}
	if _, err := os.Stat(filepath.Join(root, "ucanduit", "big.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no document to be written")
	}
}
