package nav

import (
	"testing"

	"miraiworks.jp/mirai-web/internal/i18n"
)

func TestBuildPrefixesLanguage(t *testing.T) {
	items := Build(i18n.English, "/services")
	if len(items) != len(Main) {
		t.Fatalf("expected %d items, got %d", len(Main), len(items))
	}
	if items[0].Href != "/en/services" {
		t.Fatalf("href: %q", items[0].Href)
	}
	if !items[0].Active {
		t.Fatal("services should be active on /services")
	}
	for _, it := range items[1:] {
		if it.Active {
			t.Fatalf("unexpected active item %v", it)
		}
	}
}

func TestBuildActiveOnSubpath(t *testing.T) {
	items := Build(i18n.Japanese, "/news/spring-hiring")
	var news RenderedItem
	for _, it := range items {
		if it.LabelKey == "nav.news" {
			news = it
		}
	}
	if !news.Active {
		t.Fatal("news should be active on an article path")
	}
}

func TestBreadcrumbsHomeOnly(t *testing.T) {
	crumbs := Breadcrumbs(i18n.Japanese, "/")
	if len(crumbs) != 1 || crumbs[0].LabelKey != "nav.home" || !crumbs[0].Active {
		t.Fatalf("crumbs: %v", crumbs)
	}
	if crumbs[0].Href != "/ja/" {
		t.Fatalf("home href: %q", crumbs[0].Href)
	}
}

func TestBreadcrumbsDeepPath(t *testing.T) {
	crumbs := Breadcrumbs(i18n.English, "/news/spring-hiring")
	if len(crumbs) != 3 {
		t.Fatalf("crumbs: %v", crumbs)
	}
	if crumbs[1].LabelKey != "nav.news" || crumbs[1].Href != "/en/news" {
		t.Fatalf("section crumb: %v", crumbs[1])
	}
	last := crumbs[2]
	if last.Label != "Spring hiring" || !last.Active || last.Href != "/en/news/spring-hiring" {
		t.Fatalf("leaf crumb: %v", last)
	}
}

func TestBreadcrumbsUnknownSection(t *testing.T) {
	crumbs := Breadcrumbs(i18n.Japanese, "/privacy")
	if len(crumbs) != 2 {
		t.Fatalf("crumbs: %v", crumbs)
	}
	if crumbs[1].LabelKey != "" || crumbs[1].Label != "Privacy" {
		t.Fatalf("crumb: %v", crumbs[1])
	}
}
