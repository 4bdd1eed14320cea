package middleware

import (
	"context"

	"miraiworks.jp/mirai-web/internal/i18n"
)

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLang ctxKey = "lang"

// WithLang stores the resolved language in context
func WithLang(ctx context.Context, lang i18n.Language) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// LangFromContext returns the resolved language, or the default when
// the locale middleware has not run.
func LangFromContext(ctx context.Context) i18n.Language {
	if l, ok := ctx.Value(ctxKeyLang).(i18n.Language); ok {
		return l
	}
	return i18n.Default
}
