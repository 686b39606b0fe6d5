package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment.
// Native routes are consulted when no prefixed module matches, and the root
// module, when mounted, receives anything left over.
type Router struct {
	modules map[string]*Module
	root    *Module
	native  *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a handler outside of any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers a module under its prefix.
func (r *Router) Mount(m *Module) {
	if m.Prefix() == "/" {
		r.root = m
		return
	}
	r.modules[m.Prefix()] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req = req.Clone(req.Context())
		req.URL.Path = path
		req.URL.RawPath = trimRaw(req.URL.RawPath, strings.TrimSuffix, "/")
	}

	if m, ok := r.modules[firstSegment(path)]; ok {
		m.Serve(w, req)
		return
	}

	if _, pattern := r.native.Handler(req); pattern != "" || r.root == nil {
		r.native.ServeHTTP(w, req)
		return
	}

	r.root.Serve(w, req)
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
