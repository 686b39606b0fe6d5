package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
	"github.com/JaimeStill/translation-console/pkg/logging"
	"github.com/JaimeStill/translation-console/pkg/module"
	"github.com/JaimeStill/translation-console/web/app"
)

const batchesJSON = `{"batches":[
	{"id":1,"locale":"en-us","status":"pending","total_articles":2,"translated_articles":0,"created_at":"2024-05-01T10:00:00",
	 "articles":[{"id":101,"title":"Getting started","body":"<p>Hello</p>"},{"id":102,"title":"Billing","body":"<p>Pay</p>"}]},
	{"id":2,"locale":"ja","status":"completed","total_articles":1,"translated_articles":1,
	 "articles":[{"id":201,"title":"Setup","body":"Body","translation_status":"completed"}]}
]}`

type call struct {
	method string
	args   []any
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call
	resp  map[string]string
	errs  map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		resp: map[string]string{
			"GetConfig":        `{"target_language":"French","use_azure":false,"model":"gpt-4"}`,
			"GetGlossary":      `{"terms":[{"source":"account","target":"compte"}]}`,
			"AddGlossaryTerm":  `{"success":true}`,
			"ListBatches":      batchesJSON,
			"CreateBatch":      `{"success":true,"batch":{"id":3}}`,
			"GetBatch":         `{"batch":{"id":1,"locale":"en-us","status":"pending","total_articles":2,"translated_articles":0,"articles":[{"id":101,"title":"Getting started"}]}}`,
			"StartBatch":       `{"success":true}`,
			"TranslateArticle": `{"success":true,"article":{"id":101,"title":"Bien démarrer","body":"<p>Bonjour</p>"}}`,
			"UpdateArticle":    `{"success":true}`,
			"ListOutputFiles":  `{"files":[{"name":"batch_1_fr.json","size":2048,"modified":"2024-05-01T11:00:00"}]}`,
		},
		errs: map[string]error{},
	}
}

func (f *fakeAPI) record(method string, args ...any) (*apiclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, args: args})
	if err := f.errs[method]; err != nil {
		if se, ok := apiclient.AsStatusError(err); ok {
			return se.Response, err
		}
		return nil, err
	}
	return &apiclient.Response{StatusCode: http.StatusOK, Data: json.RawMessage(f.resp[method])}, nil
}

func (f *fakeAPI) find(method string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.method == method {
			return c, true
		}
	}
	return call{}, false
}

func (f *fakeAPI) GetConfig(ctx context.Context) (*apiclient.Response, error) {
	return f.record("GetConfig")
}

func (f *fakeAPI) GetGlossary(ctx context.Context) (*apiclient.Response, error) {
	return f.record("GetGlossary")
}

func (f *fakeAPI) AddGlossaryTerm(ctx context.Context, source, target string) (*apiclient.Response, error) {
	return f.record("AddGlossaryTerm", source, target)
}

func (f *fakeAPI) ListBatches(ctx context.Context) (*apiclient.Response, error) {
	return f.record("ListBatches")
}

func (f *fakeAPI) CreateBatch(ctx context.Context, locale string) (*apiclient.Response, error) {
	return f.record("CreateBatch", locale)
}

func (f *fakeAPI) GetBatch(ctx context.Context, id string) (*apiclient.Response, error) {
	return f.record("GetBatch", id)
}

func (f *fakeAPI) StartBatch(ctx context.Context, id string) (*apiclient.Response, error) {
	return f.record("StartBatch", id)
}

func (f *fakeAPI) TranslateArticle(ctx context.Context, id string, article any) (*apiclient.Response, error) {
	return f.record("TranslateArticle", id, article)
}

func (f *fakeAPI) UpdateArticle(ctx context.Context, id string, data any) (*apiclient.Response, error) {
	return f.record("UpdateArticle", id, data)
}

func (f *fakeAPI) ListOutputFiles(ctx context.Context) (*apiclient.Response, error) {
	return f.record("ListOutputFiles")
}

func statusError(status int, body string) error {
	return &apiclient.StatusError{
		Method:   http.MethodGet,
		URL:      "http://backend/api",
		Response: &apiclient.Response{StatusCode: status, Data: json.RawMessage(body)},
	}
}

func newModule(t *testing.T, api app.API) *module.Module {
	t.Helper()
	m, err := app.NewModule(app.Config{Prefix: "/", APIBase: "/api", MaxFormSize: 1024}, api, logging.Discard())
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return m
}

func serve(m *module.Module, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	m.Serve(w, req)
	return w
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestRootRedirectsToBatches(t *testing.T) {
	w := serve(newModule(t, newFakeAPI()), http.MethodGet, "/", nil)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/batches" {
		t.Errorf("Location = %q, want /batches", loc)
	}
}

func TestBatchList(t *testing.T) {
	api := newFakeAPI()
	w := serve(newModule(t, api), http.MethodGet, "/batches", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	assertContains(t, w.Body.String(),
		"<title>Translation Batches",
		`href="/batches/1"`,
		`href="/batches/2"`,
		"status-completed",
		`href="/api/output/batch_1_fr.json"`,
		"2.048kB",
		"French",
		`<option value="en-us" selected>`,
	)

	for _, method := range []string{"ListBatches", "ListOutputFiles", "GetConfig"} {
		if _, ok := api.find(method); !ok {
			t.Errorf("%s was not called", method)
		}
	}
}

func TestBatchList_OptionalSourcesFail(t *testing.T) {
	api := newFakeAPI()
	api.errs["ListOutputFiles"] = statusError(http.StatusInternalServerError, `{"error":"disk unavailable"}`)
	api.errs["GetConfig"] = errors.New("connection refused")

	w := serve(newModule(t, api), http.MethodGet, "/batches", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	assertContains(t, w.Body.String(), "disk unavailable", "connection refused", `href="/batches/1"`)
}

func TestBatchList_BackendDown(t *testing.T) {
	api := newFakeAPI()
	api.errs["ListBatches"] = errors.New("dial tcp: connection refused")

	w := serve(newModule(t, api), http.MethodGet, "/batches", nil)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	assertContains(t, w.Body.String(), "connection refused")
}

func TestBatchDetail(t *testing.T) {
	api := newFakeAPI()
	w := serve(newModule(t, api), http.MethodGet, "/batches/1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	c, _ := api.find("GetBatch")
	if c.args[0] != "1" {
		t.Errorf("GetBatch id = %v, want 1", c.args[0])
	}

	assertContains(t, w.Body.String(),
		"<title>Batch 1",
		"Getting started",
		`href="/articles/101/edit"`,
		`action="/batches/1/start"`,
	)
}

func TestBatchDetail_NotFound(t *testing.T) {
	api := newFakeAPI()
	api.errs["GetBatch"] = statusError(http.StatusNotFound, `{"error":"Batch not found"}`)

	w := serve(newModule(t, api), http.MethodGet, "/batches/99", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	assertContains(t, w.Body.String(), "Batch not found", `href="/batches"`)
}

func TestArticleEditor(t *testing.T) {
	w := serve(newModule(t, newFakeAPI()), http.MethodGet, "/articles/201/edit", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	assertContains(t, w.Body.String(),
		`value="Setup"`,
		`action="/articles/201/edit"`,
		`formaction="/articles/201/translate"`,
		`href="/batches/2"`,
	)
}

func TestArticleEditor_NotFound(t *testing.T) {
	w := serve(newModule(t, newFakeAPI()), http.MethodGet, "/articles/999/edit", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGlossary(t *testing.T) {
	w := serve(newModule(t, newFakeAPI()), http.MethodGet, "/glossary", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	assertContains(t, w.Body.String(), "account", "compte", `action="/glossary"`)
}

func TestCreateBatch(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantLocale string
	}{
		{"selected locale", url.Values{"locale": {"ja"}}, "ja"},
		{"no locale", url.Values{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			w := serve(newModule(t, api), http.MethodPost, "/batches", tt.form)

			if w.Code != http.StatusSeeOther {
				t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
			}
			if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/batches?notice=") {
				t.Errorf("Location = %q, want /batches?notice=...", loc)
			}

			c, ok := api.find("CreateBatch")
			if !ok {
				t.Fatal("CreateBatch was not called")
			}
			if c.args[0] != tt.wantLocale {
				t.Errorf("locale = %q, want %q", c.args[0], tt.wantLocale)
			}
		})
	}
}

func TestStartBatch(t *testing.T) {
	api := newFakeAPI()
	w := serve(newModule(t, api), http.MethodPost, "/batches/1/start", url.Values{})

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/batches/1?notice=") {
		t.Errorf("Location = %q", loc)
	}

	c, _ := api.find("StartBatch")
	if c.args[0] != "1" {
		t.Errorf("StartBatch id = %v, want 1", c.args[0])
	}
}

func TestStartBatch_AlreadyStarted(t *testing.T) {
	api := newFakeAPI()
	api.errs["StartBatch"] = statusError(http.StatusBadRequest, `{"error":"Batch already started or completed"}`)

	w := serve(newModule(t, api), http.MethodPost, "/batches/2/start", url.Values{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	assertContains(t, w.Body.String(), "Batch already started or completed", `href="/batches/2"`)
}

func TestStartBatch_EscapedID(t *testing.T) {
	api := newFakeAPI()
	w := serve(newModule(t, api), http.MethodPost, "/batches/a%3Fb/start", url.Values{})

	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/batches/a%3Fb?notice=") {
		t.Errorf("Location = %q, want /batches/a%%3Fb?notice=...", loc)
	}

	c, _ := api.find("StartBatch")
	if c.args[0] != "a?b" {
		t.Errorf("StartBatch id = %v, want a?b", c.args[0])
	}

	api.errs["StartBatch"] = statusError(http.StatusBadRequest, `{"error":"Batch already started or completed"}`)
	w = serve(newModule(t, api), http.MethodPost, "/batches/a%3Fb/start", url.Values{})

	assertContains(t, w.Body.String(), `href="/batches/a%3Fb"`)
}

func TestUpdateArticle(t *testing.T) {
	api := newFakeAPI()
	form := url.Values{"title": {"New title"}, "body": {"<p>New body</p>"}}
	w := serve(newModule(t, api), http.MethodPost, "/articles/101/edit", form)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	c, ok := api.find("UpdateArticle")
	if !ok {
		t.Fatal("UpdateArticle was not called")
	}
	if c.args[0] != "101" {
		t.Errorf("id = %v, want 101", c.args[0])
	}
	data, _ := c.args[1].(map[string]string)
	if data["title"] != "New title" || data["body"] != "<p>New body</p>" {
		t.Errorf("data = %v", c.args[1])
	}
}

func TestTranslateArticle(t *testing.T) {
	api := newFakeAPI()
	form := url.Values{"title": {"Getting started!"}, "body": {"<p>Hello</p>"}}
	w := serve(newModule(t, api), http.MethodPost, "/articles/101/translate", form)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	c, ok := api.find("TranslateArticle")
	if !ok {
		t.Fatal("TranslateArticle was not called")
	}
	article, _ := c.args[1].(map[string]any)
	if article["title"] != "Getting started!" {
		t.Errorf("article title = %v, want edited title", article["title"])
	}
	if article["id"] == nil {
		t.Error("article should keep its original fields")
	}

	assertContains(t, w.Body.String(), `value="Bien démarrer"`, "Showing translated content", `href="/batches/1"`)
}

func TestAddGlossaryTerm(t *testing.T) {
	api := newFakeAPI()
	w := serve(newModule(t, api), http.MethodPost, "/glossary", url.Values{"source": {" ticket "}, "target": {"billet"}})

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	c, _ := api.find("AddGlossaryTerm")
	if c.args[0] != "ticket" || c.args[1] != "billet" {
		t.Errorf("args = %v, want [ticket billet]", c.args)
	}
}

func TestAddGlossaryTerm_Rejected(t *testing.T) {
	api := newFakeAPI()
	api.errs["AddGlossaryTerm"] = statusError(http.StatusBadRequest, `{"error":"Both source and target are required"}`)

	w := serve(newModule(t, api), http.MethodPost, "/glossary", url.Values{"source": {"x"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	assertContains(t, w.Body.String(), "Both source and target are required")
}

func TestFormTooLarge(t *testing.T) {
	api := newFakeAPI()
	form := url.Values{"title": {strings.Repeat("x", 4096)}}
	w := serve(newModule(t, api), http.MethodPost, "/articles/101/edit", form)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
	if _, called := api.find("UpdateArticle"); called {
		t.Error("UpdateArticle should not be called")
	}
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nonexistent"},
		{http.MethodGet, "/articles/1"},
		{http.MethodGet, "/batches/1/start/now"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(newModule(t, newFakeAPI()), tt.method, tt.path, nil)

			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
			assertContains(t, w.Body.String(), "Not Found")
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodPut, "/glossary", "POST"},
		{http.MethodGet, "/batches/1/start", "POST"},
		{http.MethodDelete, "/articles/1/edit", "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(newModule(t, newFakeAPI()), tt.method, tt.path, nil)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
			}
			if allow := w.Header().Get("Allow"); !strings.Contains(allow, tt.allow) {
				t.Errorf("Allow = %q, want it to list %s", allow, tt.allow)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/dist/app.css", ".app-header"},
		{"/favicon.svg", "<svg"},
		{"/site.webmanifest", "Translation Console"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serve(newModule(t, newFakeAPI()), http.MethodGet, tt.path, nil)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			assertContains(t, w.Body.String(), tt.want)
		})
	}
}

func TestNewModule_Prefixed(t *testing.T) {
	m, err := app.NewModule(app.Config{Prefix: "/console"}, newFakeAPI(), logging.Discard())
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "/console/batches" {
		t.Errorf("Location = %q, want /console/batches", loc)
	}

	req = httptest.NewRequest(http.MethodGet, "/console/glossary", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assertContains(t, w.Body.String(), `data-basepath="/console"`, `action="/console/glossary"`)
}
