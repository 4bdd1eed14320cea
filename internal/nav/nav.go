// Package nav defines the site's primary navigation and breadcrumb
// building. Paths here are language-less; hrefs come out prefixed with
// the rendering language.
package nav

import (
	"path"
	"strings"

	"miraiworks.jp/mirai-web/internal/i18n"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // language-less, e.g. "/services"
	LabelKey string // i18n key, e.g. "nav.services"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/jobs", LabelKey: "nav.jobs"},
	{Path: "/news", LabelKey: "nav.news"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// Build renders navigation items for lang with active state given the
// current language-less path.
func Build(lang i18n.Language, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     "/" + string(lang) + it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current language-less
// path. Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use a prettified segment label
func Breadcrumbs(lang i18n.Language, currentPath string) []Crumb {
	prefix := "/" + string(lang)
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: prefix + "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	if clean == "." {
		clean = "/"
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	if len(parts) > 0 && parts[0] != "" {
		top := "/" + parts[0]
		labelKey := ""
		for _, it := range Main {
			if it.Path == top {
				labelKey = it.LabelKey
				break
			}
		}
		crumbs = append(crumbs, Crumb{
			Href:     prefix + top,
			LabelKey: labelKey,
			Label:    titleFromSegment(parts[0]),
			Active:   len(parts) == 1,
		})
	}

	if len(parts) > 1 {
		href := "/" + parts[0]
		for i := 1; i < len(parts); i++ {
			href = href + "/" + parts[i]
			crumbs = append(crumbs, Crumb{
				Href:   prefix + href,
				Label:  titleFromSegment(parts[i]),
				Active: i == len(parts)-1,
			})
		}
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
