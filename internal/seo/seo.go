// Package seo assembles the per-page metadata record the layout
// serializes into the document head. Building a Meta is a pure
// function over the page inputs and the static site identity; the
// result is owned by the caller.
package seo

import (
	"strings"

	"miraiworks.jp/mirai-web/internal/i18n"
	"miraiworks.jp/mirai-web/internal/site"
)

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	Image       string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the assembled head metadata for one page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Keywords    []string
	Lang        i18n.Language
	Alternates  []i18n.AlternateLink
	ThemeColor  string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// Page is the per-page input to Build. Path must start with "/" (or be
// empty for the site root) and must not carry a language prefix; the
// builder adds the language itself. Keywords are appended after the
// site-wide defaults, duplicates and all: the order encodes priority.
type Page struct {
	Title       string
	Description string
	Lang        i18n.Language
	Path        string
	Keywords    []string
	Image       string
}

// Build assembles the metadata record. It never fails; empty inputs
// propagate into the record unchanged.
func Build(cfg site.Config, p Page) Meta {
	path := p.Path
	if path == "" {
		path = "/"
	}
	image := p.Image
	if image == "" {
		image = cfg.DefaultOGImage
	}
	imageURL := image
	if !isAbsoluteURL(image) {
		imageURL = cfg.BaseURL + image
	}

	keywords := make([]string, 0, len(cfg.DefaultKeywords)+len(p.Keywords))
	keywords = append(keywords, cfg.DefaultKeywords...)
	keywords = append(keywords, p.Keywords...)

	title := p.Title + " | " + cfg.Name
	canonical := cfg.BaseURL + "/" + string(p.Lang) + path

	return Meta{
		Title:       title,
		Description: p.Description,
		Canonical:   canonical,
		Keywords:    keywords,
		Lang:        p.Lang,
		Alternates:  i18n.AlternateLinks(path),
		ThemeColor:  cfg.ThemeColor,
		OG: OpenGraph{
			Title:       title,
			Description: p.Description,
			Type:        "website",
			URL:         canonical,
			Image:       imageURL,
			SiteName:    cfg.Name,
			Locale:      ogLocale(p.Lang),
		},
		Twitter: Twitter{
			Card:  "summary_large_image",
			Image: imageURL,
		},
	}
}

// isAbsoluteURL keeps caller-supplied absolute image URLs out of the
// base-URL join, which would otherwise produce a malformed address.
func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func ogLocale(lang i18n.Language) string {
	switch lang {
	case i18n.English:
		return "en_US"
	case i18n.Portuguese:
		return "pt_BR"
	default:
		return "ja_JP"
	}
}
