package web

import "net/http"

// Router wraps http.ServeMux with a fallback handler for unmatched requests.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

// NewRouter creates a Router. Without a fallback, unmatched requests
// receive the ServeMux default response.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// SetFallback sets the handler for requests no pattern matches.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// ServeHTTP dispatches req. The fallback only sees requests whose path no
// pattern matches under any method; a path registered for other methods
// gets the ServeMux 405 response with its Allow header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" && !r.matchesOtherMethod(req) {
			r.fallback(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}

func (r *Router) matchesOtherMethod(req *http.Request) bool {
	for _, m := range methods {
		if m == req.Method {
			continue
		}
		alt := *req
		alt.Method = m
		if _, pattern := r.mux.Handler(&alt); pattern != "" {
			return true
		}
	}
	return false
}
