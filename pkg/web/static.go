package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// Route pairs a method and pattern with the handler that serves it.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// DistServer serves files from subdir of fsys under the URL prefix.
func DistServer(fsys embed.FS, subdir, prefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	server := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServer(http.FS(sub)))
	return server.ServeHTTP
}

// PublicFile serves a single named file from subdir of fsys.
func PublicFile(fsys embed.FS, subdir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fsys.ReadFile(path.Join(subdir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes builds a GET route at the root for each named file.
func PublicFileRoutes(fsys embed.FS, subdir string, names ...string) []Route {
	routes := make([]Route, 0, len(names))
	for _, name := range names {
		routes = append(routes, Route{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: PublicFile(fsys, subdir, name),
		})
	}
	return routes
}
