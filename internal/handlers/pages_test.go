package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"miraiworks.jp/mirai-web/internal/cms"
	"miraiworks.jp/mirai-web/internal/i18n"
	"miraiworks.jp/mirai-web/internal/site"
)

func testSite(t *testing.T) *Site {
	t.Helper()
	bundle := i18n.NewBundle(map[i18n.Language]i18n.Value{
		i18n.Japanese: i18n.Map(map[string]i18n.Value{
			"nav": i18n.Map(map[string]i18n.Value{
				"home": i18n.String("ホーム"),
				"news": i18n.String("お知らせ"),
			}),
			"home": i18n.Map(map[string]i18n.Value{
				"title":       i18n.String("人材サービスのミライスタッフィング"),
				"description": i18n.String("派遣・紹介のミライスタッフィング"),
				"tagline":     i18n.String("はたらく未来をつくる"),
				"highlights":  i18n.List("人材派遣", "職業紹介", "外国人採用支援"),
				"cta":         i18n.String("お問い合わせ"),
			}),
			"news": i18n.Map(map[string]i18n.Value{
				"title":       i18n.String("お知らせ"),
				"description": i18n.String("ミライスタッフィングからのお知らせ"),
			}),
		}),
		i18n.English: i18n.Map(map[string]i18n.Value{
			"home": i18n.Map(map[string]i18n.Value{
				"title": i18n.String("Staffing services"),
			}),
		}),
	}, "")

	dir := t.TempDir()
	content := filepath.Join(dir, "news", "ja")
	if err := os.MkdirAll(content, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "---\ntitle: 春の採用情報\nsummary: 採用を開始しました。\ndate: 2026-03-01\n---\n本文です。\n"
	if err := os.WriteFile(filepath.Join(content, "spring-hiring.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	return &Site{
		Config:  site.Defaults(),
		Bundle:  bundle,
		Content: cms.NewStore(dir),
	}
}

func TestHomePage(t *testing.T) {
	s := testSite(t)
	p := s.HomePage(i18n.Japanese)
	if p.Home == nil || p.Home.Tagline != "はたらく未来をつくる" {
		t.Fatalf("home view: %+v", p.Home)
	}
	if len(p.Home.Highlights) != 3 {
		t.Fatalf("highlights: %v", p.Home.Highlights)
	}
	if !strings.HasSuffix(p.Meta.Canonical, "/ja/") {
		t.Fatalf("canonical: %q", p.Meta.Canonical)
	}
	if len(p.Languages) != len(i18n.Supported()) {
		t.Fatalf("languages: %+v", p.Languages)
	}
	// organization, breadcrumbs, and website records
	if len(p.Meta.JSONLD) != 3 {
		t.Fatalf("jsonld fragments: %d", len(p.Meta.JSONLD))
	}
}

func TestHomePageMissingKeyDegradesToKey(t *testing.T) {
	s := testSite(t)
	// the en tree has no tagline; the raw key shows up for review
	p := s.HomePage(i18n.English)
	if p.Home.Tagline != "home.tagline" {
		t.Fatalf("tagline: %q", p.Home.Tagline)
	}
}

func TestNewsArticlePage(t *testing.T) {
	s := testSite(t)
	p, err := s.NewsArticlePage(i18n.Japanese, "spring-hiring")
	if err != nil {
		t.Fatalf("article: %v", err)
	}
	if p.Entry == nil || p.Entry.Title != "春の採用情報" {
		t.Fatalf("entry: %+v", p.Entry)
	}
	if !strings.HasSuffix(p.Meta.Canonical, "/ja/news/spring-hiring") {
		t.Fatalf("canonical: %q", p.Meta.Canonical)
	}
	// description comes from the summary when no override is set
	if p.Meta.Description != "採用を開始しました。" {
		t.Fatalf("description: %q", p.Meta.Description)
	}
	var hasArticle bool
	for _, frag := range p.Meta.JSONLD {
		if strings.Contains(frag, `"NewsArticle"`) {
			hasArticle = true
		}
	}
	if !hasArticle {
		t.Fatal("missing NewsArticle structured data")
	}
}

func TestSearchPage(t *testing.T) {
	s := testSite(t)
	p, err := s.SearchPage(i18n.Japanese, "採用")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if p.Search == nil || len(p.Search.Results) == 0 {
		t.Fatalf("search view: %+v", p.Search)
	}
}

func TestPagePathsIncludesContent(t *testing.T) {
	s := testSite(t)
	paths, err := s.PagePaths()
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, p := range paths {
		if p == "/news/spring-hiring" {
			found = true
		}
	}
	if !found {
		t.Fatalf("paths: %v", paths)
	}
}
