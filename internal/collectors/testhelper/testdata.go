// Package testhelper loads provider payload fixtures for collector tests.
package testhelper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// LoadTestdata loads a file from the caller's testdata directory.
func LoadTestdata(t testing.TB, filename string) []byte {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", path, err)
	}
	return data
}

// LoadPayload loads a JSON testdata file as a provider payload.
func LoadPayload(t testing.TB, filename string) places.Payload {
	t.Helper()

	var p places.Payload
	if err := json.Unmarshal(LoadTestdata(t, filename), &p); err != nil {
		t.Fatalf("Failed to parse testdata file %s: %v", filename, err)
	}
	return p
}

// Route maps a request path to the testdata file served for it.
type Route struct {
	Path   string
	File   string
	Status int
}

// NewServer starts an httptest server answering each route with its
// fixture. Unknown paths get a 404. Every request is passed to inspect when
// it is non-nil.
func NewServer(t testing.TB, inspect func(*http.Request), routes ...Route) *httptest.Server {
	t.Helper()

	bodies := make(map[string]Route, len(routes))
	for _, r := range routes {
		bodies[r.Path] = r
	}
	files := make(map[string][]byte, len(routes))
	for _, r := range routes {
		if r.File != "" {
			files[r.Path] = LoadTestdata(t, r.File)
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if inspect != nil {
			inspect(req)
		}
		route, ok := bodies[req.URL.Path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(files[req.URL.Path])
	}))
	t.Cleanup(srv.Close)
	return srv
}
