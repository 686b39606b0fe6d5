// Package proxy forwards the console's same-origin API path to the backend.
package proxy

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/JaimeStill/translation-console/pkg/handlers"
	"github.com/JaimeStill/translation-console/pkg/middleware"
)

// ErrBackendUnavailable is reported when the backend cannot be reached.
var ErrBackendUnavailable = errors.New("backend unavailable")

// New returns a handler that forwards requests to target, joining target's
// path with the incoming path. Method, query, and body pass through
// unchanged. Unreachable backends yield a 502 JSON error.
func New(target *url.URL, logger *slog.Logger) http.Handler {
	logger = logger.With("system", "proxy")

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = target.Host
			if id := middleware.RequestIDFromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set(middleware.HeaderRequestID, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			handlers.RespondError(w, r, logger, http.StatusBadGateway, fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, target.Host, err))
		},
	}
}
