package web_test

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/translation-console/pkg/web"
)

//go:embed testdata/static/*
var staticFS embed.FS

func TestDistServer(t *testing.T) {
	handler := web.DistServer(staticFS, "testdata/static", "/dist/")

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing file", "/dist/app.js", http.StatusOK},
		{"missing file", "/dist/nonexistent.js", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !strings.Contains(w.Body.String(), "console.log") {
				t.Error("response body does not contain expected content")
			}
		})
	}
}

func TestPublicFile(t *testing.T) {
	handler := web.PublicFile(staticFS, "testdata/static", "test.txt")

	req := httptest.NewRequest(http.MethodGet, "/test.txt", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "test content") {
		t.Error("response body does not contain expected content")
	}
}

func TestPublicFileNotFound(t *testing.T) {
	handler := web.PublicFile(staticFS, "testdata/static", "nonexistent.txt")

	req := httptest.NewRequest(http.MethodGet, "/nonexistent.txt", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPublicFileRoutes(t *testing.T) {
	routes := web.PublicFileRoutes(staticFS, "testdata/static", "test.txt", "app.js")

	if len(routes) != 2 {
		t.Fatalf("PublicFileRoutes() returned %d routes, want 2", len(routes))
	}

	want := []string{"/test.txt", "/app.js"}
	for i, route := range routes {
		if route.Method != http.MethodGet {
			t.Errorf("route %d: Method = %q, want GET", i, route.Method)
		}
		if route.Pattern != want[i] {
			t.Errorf("route %d: Pattern = %q, want %q", i, route.Pattern, want[i])
		}
		if route.Handler == nil {
			t.Errorf("route %d: Handler is nil", i)
		}
	}
}
