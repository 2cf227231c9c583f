package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func response(t *testing.T, rec *httptest.ResponseRecorder) CheckResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// fakeTool writes a shell script standing in for mcrl22lps.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "mcrl22lps")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestIndex(t *testing.T) {
	rec := do(t, New("", nil), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/check_mcrl2")
}

func TestCheckFallsBackToBridge(t *testing.T) {
	rec := do(t, New("", nil), http.MethodPost, "/api/check_mcrl2", `{"text": "a.b"}`)

	resp := response(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "a . b\n", resp.Result)
}

func TestCheckReportsParseError(t *testing.T) {
	rec := do(t, New("", nil), http.MethodPost, "/api/check_mcrl2", `{"text": "a . . b"}`)

	resp := response(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Result, "found \".\"")
}

func TestCheckRunsTool(t *testing.T) {
	tool := fakeTool(t, `[ "$1" = "--print-ast" ] || exit 2; cat`)
	rec := do(t, New(tool, nil), http.MethodPost, "/api/check_mcrl2", `{"text": "init delta;"}`)

	resp := response(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "init delta;", resp.Result)
}

func TestCheckToolFailure(t *testing.T) {
	tool := fakeTool(t, `echo "syntax error" >&2; exit 1`)
	rec := do(t, New(tool, nil), http.MethodPost, "/api/check_mcrl2", `{"text": "init"}`)

	resp := response(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "syntax error\n", resp.Result)
}

func TestCheckMissingTool(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "mcrl22lps")
	rec := do(t, New(missing, nil), http.MethodPost, "/api/check_mcrl2", `{"text": "init delta;"}`)

	resp := response(t, rec)
	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Result, "Error running mcrl22lps: "), resp.Result)
}

func TestPrintKinds(t *testing.T) {
	s := New("", nil)

	resp := response(t, do(t, s, http.MethodPost, "/api/print", `{"text": "[a]true", "kind": "mcf"}`))
	assert.True(t, resp.Success)
	assert.Equal(t, "[a]true\n", resp.Result)

	resp = response(t, do(t, s, http.MethodPost, "/api/print", `{"text": "true + false", "kind": "mcf"}`))
	assert.False(t, resp.Success)

	resp = response(t, do(t, s, http.MethodPost, "/api/print", `{"text": "true + false", "kind": "qmcf"}`))
	assert.True(t, resp.Success)
}

func TestPrintUnknownKind(t *testing.T) {
	rec := do(t, New("", nil), http.MethodPost, "/api/print", `{"text": "a", "kind": "lts"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidJSON(t *testing.T) {
	rec := do(t, New("", nil), http.MethodPost, "/api/check_mcrl2", `{"text":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON in request body\n", rec.Body.String())
}

func TestPreflight(t *testing.T) {
	rec := do(t, New("", nil), http.MethodOptions, "/api/check_mcrl2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestNotFound(t *testing.T) {
	rec := do(t, New("", nil), http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found\n", rec.Body.String())
}
