// Package web provides infrastructure for serving server-rendered views with
// Go templates. Templates are parsed once at startup and each view is
// rendered against a clone of the shared layouts.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef declares a view: the route it answers, the template that renders
// it, and the document title and stylesheet bundle the layout uses.
// A non-empty Redirect makes the route redirect there instead of rendering.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Bundle   string
	Redirect string
}

// ViewData is the value every layout executes against.
// BasePath enables portable URL generation via {{ .BasePath }}.
type ViewData struct {
	Title    string
	Bundle   string
	BasePath string
	Data     any
}

// TemplateSet holds pre-parsed templates keyed by view template name.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matched by layoutGlob and clones them
// once per view, parsing each view template from pageSubdir into its clone.
// Views without a template are skipped.
func NewTemplateSet(layoutFS, pageFS embed.FS, layoutGlob, pageSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(Funcs()).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	pageSub, err := fs.Sub(pageFS, pageSubdir)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		if v.Template == "" {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(pageSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		templates[v.Template] = t
	}

	return &TemplateSet{
		views:    templates,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path injected into every ViewData.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Data builds the ViewData for view carrying data.
func (ts *TemplateSet) Data(view ViewDef, data any) ViewData {
	return ViewData{
		Title:    view.Title,
		Bundle:   view.Bundle,
		BasePath: ts.basePath,
		Data:     data,
	}
}

// ErrorHandler returns a handler that renders view with the given status.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.RenderStatus(w, status, layout, view.Template, ts.Data(view, nil)); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}
// Render executes the named layout for the view template with a 200 status.
func (ts *TemplateSet) Render(w http.ResponseWriter, layoutName, viewPath string, data ViewData) error {
	return ts.RenderStatus(w, http.StatusOK, layoutName, viewPath, data)
}

// RenderStatus executes the named layout into a buffer and writes it with
// status. Nothing is written to w when execution fails.
func (ts *TemplateSet) RenderStatus(w http.ResponseWriter, status int, layoutName, viewPath string, data ViewData) error {
	t, ok := ts.views[viewPath]
	if !ok {
		return fmt.Errorf("template not found: %s", viewPath)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("execute %s: %w", viewPath, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
