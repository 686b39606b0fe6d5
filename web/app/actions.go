package app

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
)

var errInvalidForm = errors.New("invalid form")

func (h *handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if h.maxFormSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFormSize)
	}
	if err := r.ParseForm(); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	return nil
}

func (h *handler) createBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	locale := strings.TrimSpace(r.PostFormValue("locale"))
	if _, err := h.api.CreateBatch(r.Context(), locale); err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	h.seeOther(w, r, "/batches", "Batch created")
}

func (h *handler) startBatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	back := "/batches/" + url.PathEscape(id)

	if _, err := h.api.StartBatch(r.Context(), id); err != nil {
		h.backendError(w, r, err, back)
		return
	}

	h.seeOther(w, r, back, "Batch processing finished")
}

func (h *handler) updateArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	back := "/articles/" + url.PathEscape(id) + "/edit"

	if err := h.parseForm(w, r); err != nil {
		h.backendError(w, r, err, back)
		return
	}

	data := map[string]string{
		"title": r.PostFormValue("title"),
		"body":  r.PostFormValue("body"),
	}

	if _, err := h.api.UpdateArticle(r.Context(), id, data); err != nil {
		h.backendError(w, r, err, back)
		return
	}

	h.seeOther(w, r, back, "Article saved")
}

// translateArticle sends the article, with any edits from the form, for
// translation and renders the result in the editor for review. The backend
// does not store the translation; saving it is a separate update.
func (h *handler) translateArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	back := "/articles/" + url.PathEscape(id) + "/edit"

	if err := h.parseForm(w, r); err != nil {
		h.backendError(w, r, err, back)
		return
	}

	original, batch, err := h.lookupArticle(r, id)
	if err != nil {
		h.backendError(w, r, err, "/batches")
		return
	}

	article := maps.Clone(original)
	if v, ok := r.PostForm["title"]; ok {
		article["title"] = strings.Join(v, "")
	}
	if v, ok := r.PostForm["body"]; ok {
		article["body"] = strings.Join(v, "")
	}

	resp, err := h.api.TranslateArticle(r.Context(), id, article)
	if err != nil {
		h.backendError(w, r, err, back)
		return
	}

	p, err := decode[articlePayload](resp)
	if err != nil {
		h.backendError(w, r, err, back)
		return
	}

	h.render(w, r, views[viewArticleEditor], http.StatusOK, articleData{
		Article:    p.Article,
		BatchID:    idOf(batch),
		Translated: true,
		Notice:     "Translation ready for review. Save to keep it.",
	})
}

func (h *handler) addGlossaryTerm(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.backendError(w, r, err, "/glossary")
		return
	}

	source := strings.TrimSpace(r.PostFormValue("source"))
	target := strings.TrimSpace(r.PostFormValue("target"))

	if _, err := h.api.AddGlossaryTerm(r.Context(), source, target); err != nil {
		h.backendError(w, r, err, "/glossary")
		return
	}

	h.seeOther(w, r, "/glossary", "Term added")
}
