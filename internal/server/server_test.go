package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-cmsfront/internal/server"
	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
	"github.com/goliatone/go-cmsfront/pkg/site"
	"github.com/goliatone/go-cmsfront/pkg/testsupport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type upstream struct {
	mu       sync.Mutex
	status   int
	payloads []map[string]any
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)
	u.mu.Lock()
	u.payloads = append(u.payloads, payload)
	status := u.status
	u.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (u *upstream) calls() []map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]map[string]any(nil), u.payloads...)
}

type fixture struct {
	handler http.Handler
	inbox   *contact.MemoryInbox
}

func newFixture(t *testing.T, mutate func(*server.Config)) fixture {
	t.Helper()

	engine, err := site.NewEngine()
	require.NoError(t, err)
	repo := testsupport.Repository(t)
	composer, err := components.NewComposer(engine, components.WithNews(repo))
	require.NoError(t, err)
	s, err := site.New(repo, composer, engine)
	require.NoError(t, err)
	catalog, err := i18n.Default()
	require.NoError(t, err)

	inbox := &contact.MemoryInbox{}
	relay, err := contact.NewRelay(context.Background(), contact.WithInbox(inbox))
	require.NoError(t, err)

	cfg := server.Config{
		Site:       s,
		Translator: catalog,
		Relay:      relay,
		Assets:     components.AssetsFS(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	srv, err := server.New(cfg)
	require.NoError(t, err)
	return fixture{handler: srv.Handler(), inbox: inbox}
}

func (f fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return f.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (f fixture) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(t, req)
}

func (f fixture) postJSON(t *testing.T, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return f.do(t, req)
}

func validForm() url.Values {
	return url.Values{
		"_page":       {"contact"},
		"_locale":     {"en"},
		"name":        {"Ada Lovelace"},
		"email":       {"ada@example.org"},
		"category":    {"tickets"},
		"subject":     {"Seats"},
		"message":     {"Are there seats left?"},
		"agreedTerms": {"true"},
	}
}

func TestServer_New_RequiresSiteAndTranslator(t *testing.T) {
	_, err := server.New(server.Config{})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.get(t, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","locales":["en","fi"]}`, rec.Body.String())
}

func TestIndex_NegotiatesLocale(t *testing.T) {
	f := newFixture(t, nil)

	cases := map[string]string{
		"":                     "/en/",
		"fi-FI,fi;q=0.9":       "/fi/",
		"de-DE,en;q=0.5":       "/en/",
		"this is not a header": "/en/",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		rec := f.do(t, req)
		assert.Equal(t, http.StatusFound, rec.Code, header)
		assert.Equal(t, want, rec.Header().Get("Location"), header)
	}
}

func TestPage_Renders(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get(t, "/en/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Welcome")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = f.get(t, "/en/faq")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "When does it start?")
}

func TestPage_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	for _, target := range []string{"/en/missing", "/xx/", "/en/news/missing", "/en/a/b/c"} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Page not found", target)
	}
}

func TestNewsPost(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get(t, "/en/news/opening")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Opening ceremony")
}

func TestPage_StatusFromQuery(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get(t, "/en/contact?contact=success")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you! Your message has been sent.")

	rec = f.get(t, "/en/contact?contact=bogus")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-contact-form")
}

func TestAssets(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get(t, "/assets/"+components.CarouselScriptName)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "% count")
}

func TestPostContact_Success(t *testing.T) {
	up := &upstream{}
	ts := httptest.NewServer(up)
	defer ts.Close()

	f := newFixture(t, func(cfg *server.Config) {
		cfg.Contact = contact.NewClient(ts.URL + "/submit")
	})

	rec := f.postForm(t, "/en/contact", validForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/contact?contact=success", rec.Header().Get("Location"))

	calls := up.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"botField":    "",
		"name":        "Ada Lovelace",
		"email":       "ada@example.org",
		"category":    "tickets",
		"subject":     "Seats",
		"message":     "Are there seats left?",
		"agreedTerms": true,
	}, calls[0])
}

func TestPostContact_DeliveryFailureKeepsValues(t *testing.T) {
	up := &upstream{status: http.StatusInternalServerError}
	ts := httptest.NewServer(up)
	defer ts.Close()

	f := newFixture(t, func(cfg *server.Config) {
		cfg.Contact = contact.NewClient(ts.URL + "/submit")
	})

	rec := f.postForm(t, "/en/contact", validForm())
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sending the message failed. Please try again later.")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, "Are there seats left?")
	assert.Len(t, up.calls(), 1)
}

func TestPostContact_ValidationErrors(t *testing.T) {
	up := &upstream{}
	ts := httptest.NewServer(up)
	defer ts.Close()

	f := newFixture(t, func(cfg *server.Config) {
		cfg.Contact = contact.NewClient(ts.URL + "/submit")
	})

	form := validForm()
	form.Set("email", "not-an-email")
	form.Del("agreedTerms")

	rec := f.postForm(t, "/en/contact", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Enter a valid email address")
	assert.Contains(t, body, "You need to accept the terms")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Empty(t, up.calls())
}

func TestPostContact_HoneypotIsDropped(t *testing.T) {
	up := &upstream{}
	ts := httptest.NewServer(up)
	defer ts.Close()

	f := newFixture(t, func(cfg *server.Config) {
		cfg.Contact = contact.NewClient(ts.URL + "/submit")
	})

	form := validForm()
	form.Set("bot-field", "buy now")

	rec := f.postForm(t, "/en/contact", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, up.calls())
}

func TestPostContact_UnknownLocale(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.postForm(t, "/xx/contact", validForm())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostContact_InProcessRelay(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.postForm(t, "/en/contact", validForm())
	require.Equal(t, http.StatusSeeOther, rec.Code)

	messages, err := f.inbox.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Seats", messages[0].Submission.Subject)
	assert.NotEmpty(t, messages[0].RequestID)
}

const relayBody = `{"botField":"","name":"Grace","email":"grace@example.org","category":"press",` +
	`"subject":"Interview","message":"Can we talk?","agreedTerms":true}`

func TestRelay(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.postJSON(t, contact.RelayPath, relayBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.ID)

	messages, err := f.inbox.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, resp.ID, messages[0].ID)
}

func TestRelay_HoneypotStoresNothing(t *testing.T) {
	f := newFixture(t, nil)

	body := strings.Replace(relayBody, `"botField":""`, `"botField":"spam"`, 1)
	rec := f.postJSON(t, contact.RelayPath, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	messages, err := f.inbox.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRelay_Rejects(t *testing.T) {
	f := newFixture(t, nil)

	cases := map[string]string{
		"malformed":      `{"name":`,
		"missing keys":   `{"name":"Grace"}`,
		"unknown key":    strings.Replace(relayBody, `}`, `,"extra":1}`, 1),
		"terms declined": strings.Replace(relayBody, `"agreedTerms":true`, `"agreedTerms":false`, 1),
	}
	for name, body := range cases {
		rec := f.postJSON(t, contact.RelayPath, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := f.postJSON(t, contact.RelayPath, strings.Replace(relayBody, `"agreedTerms":true`, `"agreedTerms":false`, 1))
	assert.Contains(t, rec.Body.String(), "agreedTerms")
}

func TestRelay_RateLimited(t *testing.T) {
	f := newFixture(t, func(cfg *server.Config) {
		cfg.RateLimiter = server.NewRateLimiter(1, time.Minute)
	})

	first := f.postJSON(t, contact.RelayPath, relayBody)
	require.Equal(t, http.StatusOK, first.Code)

	second := f.postJSON(t, contact.RelayPath, relayBody)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRelay_BodyLimit(t *testing.T) {
	f := newFixture(t, func(cfg *server.Config) {
		cfg.MaxBodyBytes = 16
	})

	rec := f.postJSON(t, contact.RelayPath, relayBody)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBodyLimit_ChunkedBodies(t *testing.T) {
	f := newFixture(t, func(cfg *server.Config) {
		cfg.MaxBodyBytes = 64
	})

	cases := []struct {
		name        string
		target      string
		contentType string
		body        string
	}{
		{"relay", contact.RelayPath, "application/json", relayBody + strings.Repeat(" ", 400)},
		{"browser form", "/en/contact", "application/x-www-form-urlencoded", validForm().Encode() + "&pad=" + strings.Repeat("x", 400)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			req.ContentLength = -1

			rec := f.do(t, req)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			assert.Contains(t, rec.Body.String(), "request body too large")
		})
	}
	messages, err := f.inbox.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRelay_NotMountedWithoutRelay(t *testing.T) {
	f := newFixture(t, func(cfg *server.Config) {
		cfg.Relay = nil
	})

	rec := f.postJSON(t, contact.RelayPath, relayBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, _ = io.Copy(io.Discard, rec.Body)
}
