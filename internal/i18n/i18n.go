// Package i18n holds the translation trees for the site's three
// languages and the routing helpers that decide which one a visitor
// gets. Trees are loaded once at startup and never change afterwards,
// so a Bundle is safe to share between requests without locking.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the site's supported UI languages.
type Language string

const (
	Japanese   Language = "ja"
	English    Language = "en"
	Portuguese Language = "pt"
)

// Default is the language every unresolvable request degrades to.
const Default = Japanese

// supported is the declared order; alternate links and the sitemap
// emit languages in exactly this order.
var supported = []Language{Japanese, English, Portuguese}

// displayNames maps each language to its native name for the picker.
var displayNames = map[Language]string{
	Japanese:   "日本語",
	English:    "English",
	Portuguese: "Português",
}

// Supported returns the supported languages in declared order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether lang is one of the supported languages.
func IsSupported(lang Language) bool {
	for _, l := range supported {
		if l == lang {
			return true
		}
	}
	return false
}

// DisplayName returns the native name of lang, or the tag itself for
// anything outside the supported set.
func DisplayName(lang Language) string {
	if n, ok := displayNames[lang]; ok {
		return n
	}
	return string(lang)
}

// Bundle holds one translation tree per loaded language plus the
// deployment base path used when reading languages out of URL paths.
type Bundle struct {
	trees    map[Language]Value
	basePath string
}

// Load reads <lang>.json for every supported language from dir. The
// default language's document must exist; the others may be missing,
// in which case lookups for them walk the default tree. basePath is
// the deployment prefix stripped by LanguageFromPath ("" when the site
// is served from the domain root).
func Load(dir, basePath string) (*Bundle, error) {
	b := &Bundle{trees: map[Language]Value{}, basePath: basePath}
	for _, l := range supported {
		raw, err := os.ReadFile(filepath.Join(dir, string(l)+".json"))
		if err != nil {
			// allow missing file for non-default locales
			if l == Default {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var root Value
		if err := json.Unmarshal(raw, &root); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.trees[l] = root
	}
	return b, nil
}

// NewBundle wraps fixture trees directly, bypassing the filesystem.
func NewBundle(trees map[Language]Value, basePath string) *Bundle {
	if trees == nil {
		trees = map[Language]Value{}
	}
	return &Bundle{trees: trees, basePath: basePath}
}

// BasePath returns the configured deployment prefix.
func (b *Bundle) BasePath() string { return b.basePath }

// Resolve walks the dot-delimited key through lang's tree and returns
// whatever sits at the end: a string, a list, or a subtree. When the
// walk dead-ends it returns the fallback if one was given, otherwise
// the full original key as a string leaf. It never fails; a missing
// translation renders as its key so content authors notice it.
func (b *Bundle) Resolve(lang Language, key string, fallback ...string) Value {
	cur, ok := b.trees[lang]
	if !ok {
		// closed enum, but a fixture bundle may carry fewer trees
		cur = b.trees[Default]
	}
	for _, seg := range strings.Split(key, ".") {
		node, ok := cur.Children()
		if !ok {
			return missing(key, fallback)
		}
		next, ok := node[seg]
		if !ok {
			return missing(key, fallback)
		}
		cur = next
	}
	return cur
}

func missing(key string, fallback []string) Value {
	if len(fallback) > 0 {
		return String(fallback[0])
	}
	return String(key)
}

// T resolves key to a string leaf. Non-string leaves degrade to the
// fallback or the key, same as a missing entry.
func (b *Bundle) T(lang Language, key string, fallback ...string) string {
	if s, ok := b.Resolve(lang, key, fallback...).Str(); ok {
		return s
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return key
}

// TList resolves key to a list leaf, or nil when the key holds
// anything else. Templates range over the result, so nil is fine.
func (b *Bundle) TList(lang Language, key string) []string {
	items, _ := b.Resolve(lang, key).Items()
	return items
}

// DetectLanguage picks a language from an Accept-Language header. Only
// the first preference is consulted; its base subtag (en-US -> en) is
// matched against the supported set. Anything else, including an
// absent header, yields the default.
func DetectLanguage(acceptLanguage string) Language {
	first := acceptLanguage
	if i := strings.IndexByte(first, ','); i != -1 {
		first = first[:i]
	}
	if i := strings.IndexByte(first, ';'); i != -1 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return Default
	}
	tag, err := language.Parse(first)
	if err != nil {
		return Default
	}
	base, _ := tag.Base()
	if l := Language(base.String()); IsSupported(l) {
		return l
	}
	return Default
}

// LanguageFromPath reads the language out of a request path like
// "/ja/about". The deployment base path is stripped first; the first
// non-empty segment decides, and anything unsupported degrades to the
// default.
func (b *Bundle) LanguageFromPath(path string) Language {
	if b.basePath != "" {
		path = strings.TrimPrefix(path, b.basePath)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if l := Language(seg); IsSupported(l) {
			return l
		}
		return Default
	}
	return Default
}

// AlternateLink pairs a language with the URL of the same page in that
// language.
type AlternateLink struct {
	Lang Language
	Href string
}

// AlternateLinks returns one link per supported language, in declared
// order, for the given language-less path. The current language is
// included; callers filter it out themselves if they need to.
func AlternateLinks(path string) []AlternateLink {
	out := make([]AlternateLink, 0, len(supported))
	for _, l := range supported {
		out = append(out, AlternateLink{Lang: l, Href: "/" + string(l) + path})
	}
	return out
}

// StripLanguagePrefix removes leading supported-language segments from
// path and normalizes the result to exactly one leading slash. It is
// idempotent: stripping an already-stripped path changes nothing, even
// for degenerate inputs with stacked prefixes.
func StripLanguagePrefix(path string) string {
	trimmed := strings.TrimLeft(path, "/")
	for {
		stripped := false
		for _, l := range supported {
			s := string(l)
			if trimmed == s {
				return "/"
			}
			if rest, ok := strings.CutPrefix(trimmed, s+"/"); ok {
				trimmed = strings.TrimLeft(rest, "/")
				stripped = true
				break
			}
		}
		if !stripped {
			return "/" + trimmed
		}
	}
}
