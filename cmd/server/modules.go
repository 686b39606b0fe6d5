package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/translation-console/internal/config"
	"github.com/JaimeStill/translation-console/internal/infrastructure"
	"github.com/JaimeStill/translation-console/internal/proxy"
	"github.com/JaimeStill/translation-console/pkg/handlers"
	"github.com/JaimeStill/translation-console/pkg/middleware"
	"github.com/JaimeStill/translation-console/pkg/module"
	"github.com/JaimeStill/translation-console/web/app"
)

type Modules struct {
	App *module.Module
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	appModule, err := app.NewModule(app.Config{
		Prefix:      "/",
		APIBase:     cfg.Client.BaseURL,
		MaxFormSize: cfg.Server.MaxFormSizeBytes(),
	}, infra.Client, infra.Logger)
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.Logger(infra.Logger))

	modules := &Modules{App: appModule}

	// An absolute client base URL means the browser reaches the backend
	// directly, so there is nothing to pass through.
	if cfg.Client.Relative() {
		apiModule, err := newAPIModule(infra, cfg)
		if err != nil {
			return nil, err
		}
		modules.API = apiModule
	}

	return modules, nil
}

func newAPIModule(infra *infrastructure.Infrastructure, cfg *config.Config) (*module.Module, error) {
	prefix := strings.TrimSuffix(cfg.Client.BaseURL, "/")

	target, err := url.Parse(strings.TrimSuffix(cfg.Client.Origin, "/") + prefix)
	if err != nil {
		return nil, fmt.Errorf("proxy target: %w", err)
	}

	apiModule := module.New(prefix, proxy.New(target, infra.Logger))
	apiModule.Use(middleware.CORS(&cfg.CORS))
	apiModule.Use(middleware.Logger(infra.Logger))

	infra.Logger.Info("api pass-through configured", "prefix", prefix, "target", target.String())

	return apiModule, nil
}

func (m *Modules) Mount(router *module.Router) {
	if m.API != nil {
		router.Mount(m.API)
	}
	router.Mount(m.App)
}

func buildMiddleware() *middleware.System {
	sys := middleware.New()
	sys.Use(middleware.RequestID())
	return sys
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondText(w, http.StatusOK, "OK")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondText(w, http.StatusServiceUnavailable, "NOT READY")
			return
		}
		handlers.RespondText(w, http.StatusOK, "READY")
	})

	return router
}
