// Package app is the console's web module: server-rendered views for
// translation batches, the article editor, and the glossary, backed by the
// translation API client.
package app

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
	"github.com/JaimeStill/translation-console/pkg/module"
	"github.com/JaimeStill/translation-console/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

var publicFiles = []string{
	"favicon.svg",
	"site.webmanifest",
}

// API is the subset of the backend client the views call.
type API interface {
	GetConfig(ctx context.Context) (*apiclient.Response, error)
	GetGlossary(ctx context.Context) (*apiclient.Response, error)
	AddGlossaryTerm(ctx context.Context, source, target string) (*apiclient.Response, error)
	ListBatches(ctx context.Context) (*apiclient.Response, error)
	CreateBatch(ctx context.Context, locale string) (*apiclient.Response, error)
	GetBatch(ctx context.Context, id string) (*apiclient.Response, error)
	StartBatch(ctx context.Context, id string) (*apiclient.Response, error)
	TranslateArticle(ctx context.Context, id string, article any) (*apiclient.Response, error)
	UpdateArticle(ctx context.Context, id string, data any) (*apiclient.Response, error)
	ListOutputFiles(ctx context.Context) (*apiclient.Response, error)
}

// Config configures the app module.
type Config struct {
	// Prefix is the mount prefix; "/" mounts the app at the root.
	Prefix string

	// APIBase is the browser-facing API base used for output file links.
	APIBase string

	// MaxFormSize bounds form submissions in bytes.
	MaxFormSize int64
}

// NewModule creates the app module.
func NewModule(cfg Config, api API, logger *slog.Logger) (*module.Module, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "/"
	}
	if cfg.APIBase == "" {
		cfg.APIBase = apiclient.DefaultBaseURL
	}
	cfg.APIBase = strings.TrimSuffix(cfg.APIBase, "/")

	basePath := strings.TrimSuffix(cfg.Prefix, "/")

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		append(Views(), errorViews...),
	)
	if err != nil {
		return nil, err
	}

	h := &handler{
		ts:          ts,
		api:         api,
		logger:      logger.With("module", "app"),
		apiBase:     cfg.APIBase,
		maxFormSize: cfg.MaxFormSize,
	}

	return module.New(cfg.Prefix, buildRouter(ts, h)), nil
}

func buildRouter(ts *web.TemplateSet, h *handler) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(layout, errorViews[errorNotFound], http.StatusNotFound))

	for _, view := range views {
		if view.Redirect != "" {
			r.HandleFunc("GET "+view.Route, h.redirect(view.Redirect, http.StatusFound))
		}
	}

	r.HandleFunc("GET "+views[viewBatchList].Route, h.batchList)
	r.HandleFunc("GET "+views[viewBatchDetail].Route, h.batchDetail)
	r.HandleFunc("GET "+views[viewArticleEditor].Route, h.articleEditor)
	r.HandleFunc("GET "+views[viewGlossary].Route, h.glossary)

	r.HandleFunc("POST /batches", h.createBatch)
	r.HandleFunc("POST /batches/{id}/start", h.startBatch)
	r.HandleFunc("POST /articles/{id}/edit", h.updateArticle)
	r.HandleFunc("POST /articles/{id}/translate", h.translateArticle)
	r.HandleFunc("POST /glossary", h.addGlossaryTerm)

	r.HandleFunc("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}
