// Package middleware provides composable HTTP middleware shared by the
// console's modules: request identifiers, request logging, and CORS.
package middleware

import "net/http"

// System accumulates middleware and applies it as a single chain.
type System struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() *System {
	return &System{}
}

// Use appends mw to the chain. The first registered middleware is outermost.
func (s *System) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler in every registered middleware.
func (s *System) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
