package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"miraiworks.jp/mirai-web/internal/cms"
	"miraiworks.jp/mirai-web/internal/handlers"
	"miraiworks.jp/mirai-web/internal/i18n"
	mw "miraiworks.jp/mirai-web/internal/middleware"
	"miraiworks.jp/mirai-web/internal/site"
)

// config is the server's environment configuration. The site identity
// itself lives in internal/site; this only covers process wiring.
type config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	Dev          bool   `env:"MIRAI_WEB_DEV"`
	TemplatesDir string `env:"MIRAI_WEB_TEMPLATES" envDefault:"templates"`
	PublicDir    string `env:"MIRAI_WEB_PUBLIC" envDefault:"public"`
	LocalesDir   string `env:"MIRAI_WEB_LOCALES" envDefault:"locales"`
	ContentDir   string `env:"MIRAI_WEB_CONTENT" envDefault:"content"`
	BasePath     string `env:"MIRAI_WEB_BASE_PATH"`
	SiteFile     string `env:"MIRAI_WEB_SITE_CONFIG"`
}

var (
	cfg     config
	devMode bool
	app     *handlers.Site
)

func main() {
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}
	var addr string
	flag.StringVar(&addr, "addr", ":"+cfg.Port, "HTTP listen address")
	flag.Parse()
	devMode = cfg.Dev

	siteCfg, err := site.Load(cfg.SiteFile)
	if err != nil {
		log.Fatalf("load site config: %v", err)
	}
	bundle, err := i18n.Load(cfg.LocalesDir, cfg.BasePath)
	if err != nil {
		log.Fatalf("load locales: %v", err)
	}
	app = &handlers.Site{
		Config:    siteCfg,
		Bundle:    bundle,
		Content:   cms.NewStore(cfg.ContentDir),
		Analytics: handlers.LoadAnalyticsFromEnv(),
	}

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v)", addr, devMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(app.Bundle))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(cfg.PublicDir, "assets"), ""))
	r.Handle("/assets/*", assets)

	r.Get("/sitemap.xml", SitemapHandler)
	r.Get("/robots.txt", RobotsHandler)

	// Root picks a language from the browser and redirects
	r.With(mw.VaryLocale).Get("/", RootRedirectHandler)

	// Language-prefixed page tree
	langs := make([]string, 0, len(i18n.Supported()))
	for _, l := range i18n.Supported() {
		langs = append(langs, string(l))
	}
	r.Route("/{lang:"+strings.Join(langs, "|")+"}", func(r chi.Router) {
		r.Use(mw.Locale(app.Bundle))
		r.Get("/", HomeHandler)
		r.Get("/services", SectionHandler("services"))
		r.Get("/about", SectionHandler("about"))
		r.Get("/contact", SectionHandler("contact"))
		r.Get("/news", NewsIndexHandler)
		r.Get("/news/{slug}", NewsArticleHandler)
		r.Get("/jobs", JobsIndexHandler)
		r.Get("/jobs/{slug}", JobHandler)
		r.Get("/search", SearchHandler)
	})

	// Language-less page paths redirect into the default language
	r.NotFound(NotFoundHandler)

	return r
}
