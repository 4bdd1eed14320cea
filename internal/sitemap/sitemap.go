// Package sitemap renders sitemap.xml for the language-prefixed page
// tree. Every logical page yields one <url> per supported language,
// each carrying hreflang alternates for the others plus x-default.
package sitemap

import (
	"encoding/xml"
	"time"

	"miraiworks.jp/mirai-web/internal/i18n"
	"miraiworks.jp/mirai-web/internal/site"
)

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	Alternates []Alternate `xml:"xhtml:link"`
}

type Alternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Page is one logical page fed into Build; Path is language-less.
type Page struct {
	Path    string
	LastMod time.Time
}

// Build assembles the url set for the given logical pages.
func Build(cfg site.Config, pages []Page) URLSet {
	set := URLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, p := range pages {
		links := i18n.AlternateLinks(p.Path)
		alternates := make([]Alternate, 0, len(links)+1)
		for _, l := range links {
			alternates = append(alternates, Alternate{
				Rel:      "alternate",
				Hreflang: string(l.Lang),
				Href:     cfg.BaseURL + l.Href,
			})
		}
		alternates = append(alternates, Alternate{
			Rel:      "alternate",
			Hreflang: "x-default",
			Href:     cfg.BaseURL + "/" + string(i18n.Default) + p.Path,
		})
		var lastMod string
		if !p.LastMod.IsZero() {
			lastMod = p.LastMod.Format("2006-01-02")
		}
		for _, l := range links {
			set.URLs = append(set.URLs, URL{
				Loc:        cfg.BaseURL + l.Href,
				LastMod:    lastMod,
				Alternates: alternates,
			})
		}
	}
	return set
}

// Render serializes the url set with the XML prolog.
func (s URLSet) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
