package apiclient

import (
	"context"
	"net/url"
)

// HealthCheck calls GET /health.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/health")
}

// GetConfig calls GET /config.
func (c *Client) GetConfig(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/config")
}

// GetGlossary calls GET /glossary.
func (c *Client) GetGlossary(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/glossary")
}

// AddGlossaryTerm calls POST /glossary with {source, target}.
func (c *Client) AddGlossaryTerm(ctx context.Context, source, target string) (*Response, error) {
	return c.post(ctx, "/glossary", map[string]string{
		"source": source,
		"target": target,
	})
}

// ListBatches calls GET /batches.
func (c *Client) ListBatches(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/batches")
}

// CreateBatch calls POST /batches with {locale}. An empty locale sends
// DefaultLocale.
func (c *Client) CreateBatch(ctx context.Context, locale string) (*Response, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	return c.post(ctx, "/batches", map[string]string{"locale": locale})
}

// GetBatch calls GET /batches/{id}.
func (c *Client) GetBatch(ctx context.Context, id string) (*Response, error) {
	return c.get(ctx, "/batches/"+url.PathEscape(id))
}

// StartBatch calls POST /batches/{id}/start without a body.
func (c *Client) StartBatch(ctx context.Context, id string) (*Response, error) {
	return c.post(ctx, "/batches/"+url.PathEscape(id)+"/start", nil)
}

// TranslateArticle calls POST /articles/{id}/translate with {article}.
func (c *Client) TranslateArticle(ctx context.Context, id string, article any) (*Response, error) {
	return c.post(ctx, "/articles/"+url.PathEscape(id)+"/translate", map[string]any{
		"article": article,
	})
}

// UpdateArticle calls PUT /articles/{id} with data as the body.
func (c *Client) UpdateArticle(ctx context.Context, id string, data any) (*Response, error) {
	return c.put(ctx, "/articles/"+url.PathEscape(id), data)
}

// ListOutputFiles calls GET /output/list.
func (c *Client) ListOutputFiles(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/output/list")
}

// GetOutputFile calls GET /output/{filename}.
func (c *Client) GetOutputFile(ctx context.Context, filename string) (*Response, error) {
	return c.get(ctx, "/output/"+url.PathEscape(filename))
}
