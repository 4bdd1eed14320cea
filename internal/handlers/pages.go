// Package handlers builds the view models the page templates render.
// Every builder resolves its localized strings through the translation
// bundle and assembles head metadata with the seo package; HTTP
// plumbing stays in cmd/web.
package handlers

import (
	"fmt"

	"miraiworks.jp/mirai-web/internal/cms"
	"miraiworks.jp/mirai-web/internal/i18n"
	"miraiworks.jp/mirai-web/internal/nav"
	"miraiworks.jp/mirai-web/internal/seo"
	"miraiworks.jp/mirai-web/internal/site"
)

// Site bundles the process-wide collaborators the builders need. All
// fields are read-only after startup.
type Site struct {
	Config    site.Config
	Bundle    *i18n.Bundle
	Content   *cms.Store
	Analytics Analytics
}

// LangOption is one entry of the language picker.
type LangOption struct {
	Lang    i18n.Language
	Name    string
	Href    string
	Current bool
}

// Page is the shared view model for every page template.
type Page struct {
	Title       string
	Lang        i18n.Language
	Path        string // language-less current path
	Meta        seo.Meta
	Analytics   Analytics
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Languages   []LangOption

	// Optional per-page payloads
	Home    *HomeView
	Entries []cms.Entry
	Entry   *cms.Entry
	Search  *SearchView
}

// HomeView carries the landing page's localized copy.
type HomeView struct {
	Tagline    string
	Intro      string
	Highlights []string
	CTALabel   string
}

// SearchView carries the query and its results.
type SearchView struct {
	Query   string
	Results []cms.Entry
}

// newPage assembles the fields every page shares.
func (s *Site) newPage(lang i18n.Language, path, title, description string, keywords []string, image string) Page {
	meta := seo.Build(s.Config, seo.Page{
		Title:       title,
		Description: description,
		Lang:        lang,
		Path:        path,
		Keywords:    keywords,
		Image:       image,
	})
	crumbs := nav.Breadcrumbs(lang, path)
	meta.JSONLD = append(meta.JSONLD,
		seo.JSON(seo.Organization(s.Config)),
		seo.JSON(seo.BreadcrumbList(s.breadcrumbItems(lang, crumbs))),
	)
	return Page{
		Title:       title,
		Lang:        lang,
		Path:        path,
		Meta:        meta,
		Analytics:   s.Analytics,
		Nav:         nav.Build(lang, path),
		Breadcrumbs: crumbs,
		Languages:   s.langOptions(lang, path),
	}
}

func (s *Site) langOptions(current i18n.Language, path string) []LangOption {
	links := i18n.AlternateLinks(path)
	out := make([]LangOption, 0, len(links))
	for _, l := range links {
		out = append(out, LangOption{
			Lang:    l.Lang,
			Name:    i18n.DisplayName(l.Lang),
			Href:    l.Href,
			Current: l.Lang == current,
		})
	}
	return out
}

func (s *Site) breadcrumbItems(lang i18n.Language, crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = s.Bundle.T(lang, c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: s.Config.BaseURL + c.Href})
	}
	return items
}

// HomePage builds the landing page.
func (s *Site) HomePage(lang i18n.Language) Page {
	t := s.Bundle
	p := s.newPage(lang, "/",
		t.T(lang, "home.title"),
		t.T(lang, "home.description"),
		t.TList(lang, "home.keywords"),
		"")
	p.Meta.JSONLD = append(p.Meta.JSONLD,
		seo.JSON(seo.WebSite(s.Config, s.Config.BaseURL+"/"+string(lang)+"/search?q=")))
	p.Home = &HomeView{
		Tagline:    t.T(lang, "home.tagline"),
		Intro:      t.T(lang, "home.intro"),
		Highlights: t.TList(lang, "home.highlights"),
		CTALabel:   t.T(lang, "home.cta"),
	}
	return p
}

// StaticPage builds a simple section page (services, about, contact).
// section doubles as the path segment and the translation-key prefix.
func (s *Site) StaticPage(lang i18n.Language, section string) Page {
	t := s.Bundle
	return s.newPage(lang, "/"+section,
		t.T(lang, section+".title"),
		t.T(lang, section+".description"),
		t.TList(lang, section+".keywords"),
		"")
}

// NewsIndexPage builds the news listing.
func (s *Site) NewsIndexPage(lang i18n.Language) (Page, error) {
	entries, err := s.Content.List("news", lang)
	if err != nil {
		return Page{}, err
	}
	t := s.Bundle
	p := s.newPage(lang, "/news",
		t.T(lang, "news.title"),
		t.T(lang, "news.description"),
		nil, "")
	p.Entries = entries
	return p, nil
}

// NewsArticlePage builds one news article.
func (s *Site) NewsArticlePage(lang i18n.Language, slug string) (Page, error) {
	e, err := s.Content.Get("news", slug, lang)
	if err != nil {
		return Page{}, err
	}
	p := s.entryPage(lang, "/news/"+e.Slug, e)
	p.Meta.JSONLD = append(p.Meta.JSONLD, seo.JSON(seo.NewsArticle(
		e.Title, p.Meta.Canonical, p.Meta.OG.Image, isoDate(e))))
	return p, nil
}

// JobsIndexPage builds the job listing.
func (s *Site) JobsIndexPage(lang i18n.Language) (Page, error) {
	entries, err := s.Content.List("jobs", lang)
	if err != nil {
		return Page{}, err
	}
	t := s.Bundle
	p := s.newPage(lang, "/jobs",
		t.T(lang, "jobs.title"),
		t.T(lang, "jobs.description"),
		nil, "")
	p.Entries = entries
	return p, nil
}

// JobPage builds one job listing, with JobPosting structured data.
func (s *Site) JobPage(lang i18n.Language, slug string) (Page, error) {
	e, err := s.Content.Get("jobs", slug, lang)
	if err != nil {
		return Page{}, err
	}
	p := s.entryPage(lang, "/jobs/"+e.Slug, e)
	p.Meta.JSONLD = append(p.Meta.JSONLD, seo.JSON(seo.JobPosting(
		s.Config, e.Title, e.Excerpt, p.Meta.Canonical, isoDate(e), e.EmploymentType, e.Region)))
	return p, nil
}

// SearchPage builds the site search results page.
func (s *Site) SearchPage(lang i18n.Language, query string) (Page, error) {
	var results []cms.Entry
	for _, kind := range []string{"news", "jobs"} {
		hits, err := s.Content.Search(kind, lang, query)
		if err != nil {
			return Page{}, err
		}
		results = append(results, hits...)
	}
	t := s.Bundle
	p := s.newPage(lang, "/search",
		t.T(lang, "search.title"),
		t.T(lang, "search.description"),
		nil, "")
	p.Search = &SearchView{Query: query, Results: results}
	return p, nil
}

// entryPage maps one content entry onto the shared page model,
// honoring its front-matter SEO overrides.
func (s *Site) entryPage(lang i18n.Language, path string, e cms.Entry) Page {
	title := e.Title
	if e.SEO.Title != "" {
		title = e.SEO.Title
	}
	description := e.SEO.Description
	if description == "" {
		description = e.Summary
	}
	if description == "" {
		description = e.Excerpt
	}
	p := s.newPage(lang, path, title, description, e.SEO.Keywords, e.SEO.OGImage)
	p.Entry = &e
	return p
}

func isoDate(e cms.Entry) string {
	if e.PublishAt.IsZero() {
		return ""
	}
	return e.PublishAt.Format("2006-01-02")
}

// PagePaths lists the logical pages fed into the sitemap: the fixed
// sections plus every content entry visible in the default language.
func (s *Site) PagePaths() ([]string, error) {
	paths := []string{"/", "/services", "/jobs", "/news", "/about", "/contact"}
	for _, kind := range []string{"news", "jobs"} {
		entries, err := s.Content.List(kind, i18n.Default)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		for _, e := range entries {
			paths = append(paths, "/"+kind+"/"+e.Slug)
		}
	}
	return paths, nil
}
