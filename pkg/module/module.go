// Package module provides prefix-mounted HTTP modules with their own
// middleware chains, and a Router that dispatches requests to them.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an isolated HTTP handler mounted under a single-segment prefix.
// The root prefix "/" receives every request no other module claims.
type Module struct {
	prefix     string
	router     http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module for prefix. It panics when prefix is empty, lacks a
// leading slash, or spans more than one path segment.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix: prefix,
		router: router,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware is outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module router wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	h := m.router
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	if m.prefix == "/" {
		m.Handler().ServeHTTP(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = trimRaw(r.URL.RawPath, strings.TrimPrefix, m.prefix)

	m.Handler().ServeHTTP(w, req)
}

// trimRaw applies trim to an escaped path, keeping it empty when the
// request carried no escaped form.
func trimRaw(raw string, trim func(string, string) string, cut string) string {
	if raw == "" {
		return ""
	}
	if raw = trim(raw, cut); raw == "" {
		return "/"
	}
	return raw
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Count(prefix, "/") > 1 {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
