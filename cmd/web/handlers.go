package main

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"miraiworks.jp/mirai-web/internal/cms"
	"miraiworks.jp/mirai-web/internal/format"
	"miraiworks.jp/mirai-web/internal/i18n"
	mw "miraiworks.jp/mirai-web/internal/middleware"
	"miraiworks.jp/mirai-web/internal/sitemap"
)

var tmplCache *template.Template

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang i18n.Language, key string) string {
			return app.Bundle.T(lang, key)
		},
		"tlist": func(lang i18n.Language, key string) []string {
			return app.Bundle.TList(lang, key)
		},
		"fmtDate": func(ts time.Time, lang i18n.Language) string {
			return format.FmtDate(ts, string(lang))
		},
		"fmtCurrency": func(minor int64, currency string, lang i18n.Language) string {
			return format.FmtCurrency(minor, currency, string(lang))
		},
		"join": strings.Join,
		"safeHTML": func(s string) template.HTML {
			// cms bodies are sanitized before they reach templates
			return template.HTML(s)
		},
		"jsonld": func(s string) template.HTML {
			return template.HTML(`<script type="application/ld+json">` + s + `</script>`)
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(cfg.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", cfg.TemplatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the named page template. In dev mode, templates are
// reparsed on each request.
func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := tmplCache
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
}

// RootRedirectHandler sends the language-less root to the visitor's
// language, read from the first Accept-Language preference.
func RootRedirectHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	http.Redirect(w, r, cfg.BasePath+"/"+string(lang)+"/", http.StatusFound)
}

// NotFoundHandler redirects language-less page paths into the default
// language; anything else is a real 404.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, cfg.BasePath)
	if app.Bundle.LanguageFromPath(p) == i18n.Default && !strings.Contains(path.Base(p), ".") {
		first := firstSegment(p)
		if first != "" && !i18n.IsSupported(i18n.Language(first)) {
			http.Redirect(w, r, cfg.BasePath+"/"+string(i18n.Default)+i18n.StripLanguagePrefix(p), http.StatusFound)
			return
		}
	}
	http.NotFound(w, r)
}

func firstSegment(p string) string {
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	render(w, "home", app.HomePage(mw.LangFromContext(r.Context())))
}

// SectionHandler renders a simple localized section page.
func SectionHandler(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, "section", app.StaticPage(mw.LangFromContext(r.Context()), section))
	}
}

// NewsIndexHandler renders the news listing.
func NewsIndexHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.NewsIndexPage(mw.LangFromContext(r.Context()))
	if err != nil {
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	render(w, "news_index", p)
}

// NewsArticleHandler renders one news article.
func NewsArticleHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.NewsArticlePage(mw.LangFromContext(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	render(w, "entry", p)
}

// JobsIndexHandler renders the job listing.
func JobsIndexHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.JobsIndexPage(mw.LangFromContext(r.Context()))
	if err != nil {
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	render(w, "jobs_index", p)
}

// JobHandler renders one job listing.
func JobHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.JobPage(mw.LangFromContext(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	render(w, "entry", p)
}

// SearchHandler renders site search results.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	p, err := app.SearchPage(mw.LangFromContext(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, "search unavailable", http.StatusInternalServerError)
		return
	}
	render(w, "search", p)
}

// SitemapHandler serves sitemap.xml for the whole page tree.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	paths, err := app.PagePaths()
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	pages := make([]sitemap.Page, 0, len(paths))
	for _, p := range paths {
		pages = append(pages, sitemap.Page{Path: p})
	}
	out, err := sitemap.Build(app.Config, pages).Render()
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// RobotsHandler serves robots.txt pointing crawlers at the sitemap.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", app.Config.BaseURL)
}
