package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/translation-console/pkg/middleware"
)

func TestSystem_Apply_NoMiddleware(t *testing.T) {
	mw := middleware.New()

	wrapped := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handler"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Body.String() != "handler" {
		t.Errorf("body = %q, want %q", w.Body.String(), "handler")
	}
}

func TestSystem_Use_Order(t *testing.T) {
	mw := middleware.New()

	var order []string
	for _, name := range []string{"outer", "inner"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	wrapped := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request id not stored in context")
	}
	if got := w.Header().Get(middleware.HeaderRequestID); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("context id = %q, want abc-123", seen)
	}
	if got := w.Header().Get(middleware.HeaderRequestID); got != "abc-123" {
		t.Errorf("response header = %q, want abc-123", got)
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := middleware.RequestIDFromContext(req.Context()); id != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", id)
	}
}
