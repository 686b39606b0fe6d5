package app

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
	"github.com/JaimeStill/translation-console/pkg/middleware"
	"github.com/JaimeStill/translation-console/pkg/web"
)

type handler struct {
	ts          *web.TemplateSet
	api         API
	logger      *slog.Logger
	apiBase     string
	maxFormSize int64
}

type batchListData struct {
	Batches  []object
	Files    []object
	Config   object
	Locales  []LocaleOption
	APIBase  string
	Notice   string
	Warnings []string
}

type batchDetailData struct {
	Batch    object
	Articles []object
	Notice   string
}

type articleData struct {
	Article    object
	BatchID    string
	Translated bool
	Notice     string
}

type glossaryData struct {
	Terms  []object
	Notice string
}

type errorData struct {
	Status  int
	Message string
	Back    string
	Notice  string
}

func (h *handler) batchList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := batchListData{
		Locales: LocaleOptions(r.URL.Query().Get("locale")),
		APIBase: h.apiBase,
		Notice:  r.URL.Query().Get("notice"),
	}

	var filesErr, configErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := h.api.ListBatches(gctx)
		if err != nil {
			return err
		}
		p, err := decode[batchesPayload](resp)
		data.Batches = p.Batches
		return err
	})

	g.Go(func() error {
		resp, err := h.api.ListOutputFiles(gctx)
		if err == nil {
			var p filesPayload
			p, err = decode[filesPayload](resp)
			data.Files = p.Files
		}
		filesErr = err
		return nil
	})

	g.Go(func() error {
		resp, err := h.api.GetConfig(gctx)
		if err == nil {
			data.Config, err = decode[object](resp)
		}
		configErr = err
		return nil
	})

	if err := g.Wait(); err != nil {
		h.backendError(w, r, err, "")
		return
	}

	if filesErr != nil {
		h.logger.Warn("output files unavailable", "error", filesErr)
		data.Warnings = append(data.Warnings, "Output files unavailable: "+message(filesErr))
	}
	if configErr != nil {
		h.logger.Warn("backend config unavailable", "error", configErr)
		data.Warnings = append(data.Warnings, "Backend configuration unavailable: "+message(configErr))
	}

	h.render(w, r, views[viewBatchList], http.StatusOK, data)
}

func (h *handler) batchDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resp, err := h.api.GetBatch(r.Context(), id)
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	p, err := decode[batchPayload](resp)
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	view := views[viewBatchDetail]
	view.Title = "Batch " + id

	h.render(w, r, view, http.StatusOK, batchDetailData{
		Batch:    p.Batch,
		Articles: articlesOf(p.Batch),
		Notice:   r.URL.Query().Get("notice"),
	})
}

func (h *handler) articleEditor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	article, batch, err := h.lookupArticle(r, id)
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	h.render(w, r, views[viewArticleEditor], http.StatusOK, articleData{
		Article: article,
		BatchID: idOf(batch),
		Notice:  r.URL.Query().Get("notice"),
	})
}

func (h *handler) glossary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.api.GetGlossary(r.Context())
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	p, err := decode[termsPayload](resp)
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	h.render(w, r, views[viewGlossary], http.StatusOK, glossaryData{
		Terms:  p.Terms,
		Notice: r.URL.Query().Get("notice"),
	})
}

var errArticleNotFound = errors.New("article not found")

// lookupArticle finds an article through the batch listing, which is the
// only place the backend exposes articles.
func (h *handler) lookupArticle(r *http.Request, id string) (object, object, error) {
	resp, err := h.api.ListBatches(r.Context())
	if err != nil {
		return nil, nil, err
	}

	p, err := decode[batchesPayload](resp)
	if err != nil {
		return nil, nil, err
	}

	article, batch, ok := findArticle(p.Batches, id)
	if !ok {
		return nil, nil, errArticleNotFound
	}
	return article, batch, nil
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, view web.ViewDef, status int, data any) {
	if err := h.ts.RenderStatus(w, status, layout, view.Template, h.ts.Data(view, data)); err != nil {
		h.logger.Error("render failed", "template", view.Template, "error", err, "request_id", middleware.RequestIDFromContext(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// backendError renders a failed backend call. Client errors (4xx) keep the
// backend's status; anything else is a 502.
func (h *handler) backendError(w http.ResponseWriter, r *http.Request, err error, back string) {
	status := statusFor(err)
	h.logger.Warn("backend call failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)

	view := errorViews[errorBackend]
	if status == http.StatusNotFound {
		view.Title = errorViews[errorNotFound].Title
	}

	data := errorData{Status: status, Message: message(err)}
	if back != "" {
		data.Back = h.ts.BasePath() + back
	}
	h.render(w, r, view, status, data)
}

func (h *handler) redirect(target string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, h.ts.BasePath()+target, status)
	}
}

// seeOther completes a form action, carrying notice to the next view.
func (h *handler) seeOther(w http.ResponseWriter, r *http.Request, target, notice string) {
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, h.ts.BasePath()+target, http.StatusSeeOther)
}

func statusFor(err error) int {
	if errors.Is(err, errArticleNotFound) || apiclient.IsNotFound(err) {
		return http.StatusNotFound
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, errInvalidForm) {
		return http.StatusBadRequest
	}
	if se, ok := apiclient.AsStatusError(err); ok {
		if code := se.StatusCode(); code >= 400 && code < 500 {
			return code
		}
	}
	return http.StatusBadGateway
}

func message(err error) string {
	if se, ok := apiclient.AsStatusError(err); ok {
		if msg := se.Message(); msg != "" {
			return msg
		}
		return http.StatusText(se.StatusCode())
	}
	return err.Error()
}
