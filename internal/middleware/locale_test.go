package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"miraiworks.jp/mirai-web/internal/i18n"
)

func TestLocaleResolvesFromPath(t *testing.T) {
	b := i18n.NewBundle(nil, "")
	var got i18n.Language
	h := Locale(b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LangFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en/about", nil))
	if got != i18n.English {
		t.Fatalf("lang: %s", got)
	}
	if cl := rec.Header().Get("Content-Language"); cl != "en" {
		t.Fatalf("Content-Language: %q", cl)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fr/about", nil))
	if got != i18n.Default {
		t.Fatalf("unsupported prefix should degrade to default, got %s", got)
	}
}

func TestLangFromContextDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LangFromContext(r.Context()); got != i18n.Default {
		t.Fatalf("lang: %s", got)
	}
}

func TestVaryLocale(t *testing.T) {
	h := VaryLocale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if v := rec.Header().Get("Vary"); v != "Accept-Language" {
		t.Fatalf("Vary: %q", v)
	}
}
