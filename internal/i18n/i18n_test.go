package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func fixtureBundle() *Bundle {
	return NewBundle(map[Language]Value{
		Japanese: Map(map[string]Value{
			"nav": Map(map[string]Value{
				"home": String("ホーム"),
			}),
			"home": Map(map[string]Value{
				"highlights": List("人材派遣", "職業紹介"),
			}),
		}),
		English: Map(map[string]Value{
			"nav": Map(map[string]Value{
				"home": String("Home"),
			}),
		}),
	}, "")
}

func TestResolveReturnsLeaf(t *testing.T) {
	b := fixtureBundle()
	if got := b.T(English, "nav.home"); got != "Home" {
		t.Fatalf("expected Home, got %q", got)
	}
	if got := b.T(Japanese, "nav.home"); got != "ホーム" {
		t.Fatalf("expected ホーム, got %q", got)
	}
}

func TestResolveMissingKeyReturnsKey(t *testing.T) {
	b := fixtureBundle()
	if got := b.T(English, "nav.missing"); got != "nav.missing" {
		t.Fatalf("expected full key back, got %q", got)
	}
	// walking through a string leaf dead-ends the same way
	if got := b.T(English, "nav.home.deeper"); got != "nav.home.deeper" {
		t.Fatalf("expected full key back, got %q", got)
	}
}

func TestResolveFallback(t *testing.T) {
	b := fixtureBundle()
	if got := b.T(English, "nav.missing", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestResolveMissingTreeUsesDefault(t *testing.T) {
	b := fixtureBundle()
	// no pt tree in the fixture, so the walk runs over the default tree
	if got := b.T(Portuguese, "nav.home"); got != "ホーム" {
		t.Fatalf("expected default-tree leaf, got %q", got)
	}
}

func TestResolveListLeaf(t *testing.T) {
	b := fixtureBundle()
	items := b.TList(Japanese, "home.highlights")
	if len(items) != 2 || items[0] != "人材派遣" {
		t.Fatalf("unexpected list leaf: %v", items)
	}
	// a string leaf is not a list
	if items := b.TList(Japanese, "nav.home"); items != nil {
		t.Fatalf("expected nil for string leaf, got %v", items)
	}
}

func TestResolveSubtree(t *testing.T) {
	b := fixtureBundle()
	node, ok := b.Resolve(English, "nav").Children()
	if !ok {
		t.Fatal("expected subtree")
	}
	if _, ok := node["home"]; !ok {
		t.Fatal("subtree missing home entry")
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   Language
	}{
		{"", Default},
		{"en-US,ja;q=0.8", English},
		{"EN-us", English},
		{"pt-BR;q=0.9", Portuguese},
		{"ja", Japanese},
		{"fr-FR,en;q=0.9", Default}, // only the first preference counts
		{"zz-not-a-tag!!", Default},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.header); got != c.want {
			t.Errorf("DetectLanguage(%q) = %s, want %s", c.header, got, c.want)
		}
	}
}

func TestLanguageFromPath(t *testing.T) {
	b := fixtureBundle()
	cases := []struct {
		path string
		want Language
	}{
		{"/ja/about", Japanese},
		{"/en", English},
		{"/pt/vagas/", Portuguese},
		{"/contact", Default},
		{"/", Default},
		{"", Default},
		{"/fr/about", Default},
	}
	for _, c := range cases {
		if got := b.LanguageFromPath(c.path); got != c.want {
			t.Errorf("LanguageFromPath(%q) = %s, want %s", c.path, got, c.want)
		}
	}
}

func TestLanguageFromPathStripsBasePath(t *testing.T) {
	b := NewBundle(nil, "/site")
	if got := b.LanguageFromPath("/site/en/about"); got != English {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestAlternateLinks(t *testing.T) {
	links := AlternateLinks("/about")
	if len(links) != len(Supported()) {
		t.Fatalf("expected %d links, got %d", len(Supported()), len(links))
	}
	for i, l := range Supported() {
		if links[i].Lang != l {
			t.Errorf("link %d: expected lang %s, got %s", i, l, links[i].Lang)
		}
		if want := "/" + string(l) + "/about"; links[i].Href != want {
			t.Errorf("link %d: expected %q, got %q", i, want, links[i].Href)
		}
	}
	// empty path yields bare language roots
	if links := AlternateLinks(""); links[0].Href != "/ja" {
		t.Fatalf("expected /ja, got %q", links[0].Href)
	}
}

func TestStripLanguagePrefix(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/en/about", "/about"},
		{"/ja/", "/"},
		{"/pt", "/"},
		{"/about", "/about"},
		{"about", "/about"},
		{"//en/about", "/about"},
		{"/", "/"},
		{"", "/"},
	}
	for _, c := range cases {
		if got := StripLanguagePrefix(c.in); got != c.want {
			t.Errorf("StripLanguagePrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripLanguagePrefixIdempotent(t *testing.T) {
	inputs := []string{"/en/about", "/ja/", "/contact", "", "//pt/vagas", "/en/en/about"}
	for _, in := range inputs {
		once := StripLanguagePrefix(in)
		twice := StripLanguagePrefix(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	ja := `{"nav":{"home":"ホーム"},"tags":["a","b"]}`
	en := `{"nav":{"home":"Home"}}`
	if err := os.WriteFile(filepath.Join(dir, "ja.json"), []byte(ja), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T(English, "nav.home"); got != "Home" {
		t.Fatalf("expected Home, got %q", got)
	}
	if items := b.TList(Japanese, "tags"); len(items) != 2 {
		t.Fatalf("expected 2 tags, got %v", items)
	}
}

func TestLoadRequiresDefaultLocale(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, ""); err == nil {
		t.Fatal("expected error when default locale document is missing")
	}
}

func TestLoadRejectsNonStringLeaves(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ja.json"), []byte(`{"n":42}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, ""); err == nil {
		t.Fatal("expected error for numeric leaf")
	}
}

func TestStripIdempotentOverResolvedLinks(t *testing.T) {
	// stripping an alternate link's href yields the path it was built from
	for _, l := range AlternateLinks("/services") {
		if got := StripLanguagePrefix(l.Href); got != "/services" {
			t.Errorf("round trip for %q gave %q", l.Href, got)
		}
	}
}
