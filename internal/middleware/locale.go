package middleware

import (
	"net/http"

	"miraiworks.jp/mirai-web/internal/i18n"
)

// Locale resolves the request language from the URL path prefix and
// stores it in the request context. An unsupported or missing prefix
// degrades to the default language; the middleware never rejects.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := bundle.LanguageFromPath(r.URL.Path)
			w.Header().Set("Content-Language", string(lang))
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// VaryLocale marks a response as dependent on Accept-Language. Used on
// the language-less root redirect, which is the only place the header
// influences the response.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
