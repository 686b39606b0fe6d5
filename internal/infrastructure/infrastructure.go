// Package infrastructure assembles the systems every console entry point
// needs: lifecycle coordination, logging, and the backend API client.
package infrastructure

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/translation-console/internal/config"
	"github.com/JaimeStill/translation-console/pkg/apiclient"
	"github.com/JaimeStill/translation-console/pkg/lifecycle"
	"github.com/JaimeStill/translation-console/pkg/logging"
	"github.com/JaimeStill/translation-console/pkg/middleware"
)

// Infrastructure holds the shared systems used by the console modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Client    *apiclient.Client
}

// New creates an Infrastructure from a finalized configuration.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging,
		logging.WithAttrs("service", "translation-console", "version", cfg.Version),
	)

	client, err := NewClient(&cfg.Client)
	if err != nil {
		return nil, fmt.Errorf("api client init failed: %w", err)
	}

	logger.Info("api client configured", "base_url", client.BaseURL())

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Client:    client,
	}, nil
}

// UserAgent identifies the console to the backend.
const UserAgent = "translation-console"

// NewClient builds the API client described by cfg. Request identifiers
// assigned by middleware.RequestID are forwarded to the backend.
func NewClient(cfg *config.ClientConfig) (*apiclient.Client, error) {
	return apiclient.New(cfg.BaseURL,
		apiclient.WithOrigin(cfg.Origin),
		apiclient.WithHeader("User-Agent", UserAgent),
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}),
		apiclient.WithMaxResponseSize(cfg.MaxResponseSizeBytes()),
		apiclient.WithRequestID(middleware.RequestIDFromContext),
	)
}
