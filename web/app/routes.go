package app

import (
	"strings"

	"github.com/JaimeStill/translation-console/pkg/web"
)

var views = []web.ViewDef{
	{Route: "/{$}", Redirect: "/batches"},
	{Route: "/batches", Template: "batches.html", Title: "Translation Batches", Bundle: "app"},
	{Route: "/batches/{id}", Template: "batch.html", Title: "Batch", Bundle: "app"},
	{Route: "/articles/{id}/edit", Template: "article.html", Title: "Edit Article", Bundle: "app"},
	{Route: "/glossary", Template: "glossary.html", Title: "Glossary", Bundle: "app"},
}

var errorViews = []web.ViewDef{
	{Template: "404.html", Title: "Not Found", Bundle: "app"},
	{Template: "error.html", Title: "Backend Error", Bundle: "app"},
}

const (
	viewBatchList = iota + 1
	viewBatchDetail
	viewArticleEditor
	viewGlossary
)

const (
	errorNotFound = iota
	errorBackend
)

// Views returns the console route table.
func Views() []web.ViewDef {
	out := make([]web.ViewDef, len(views))
	copy(out, views)
	return out
}

// Match is a resolved route: the view it renders and its path parameters.
type Match struct {
	View   web.ViewDef
	Params map[string]string
}

// Resolve finds the view for path. Redirect routes resolve to a Match whose
// View.Redirect names the target.
func Resolve(path string) (Match, bool) {
	segments := splitPath(path)
	for _, v := range views {
		if params, ok := matchRoute(v.Route, segments); ok {
			return Match{View: v, Params: params}, true
		}
	}
	return Match{}, false
}

func matchRoute(route string, segments []string) (map[string]string, bool) {
	pattern := splitPath(strings.TrimSuffix(route, "{$}"))
	if len(pattern) != len(segments) {
		return nil, false
	}

	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if segments[i] == "" {
				return nil, false
			}
			params[p[1:len(p)-1]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
