// Package cms serves the site's localized markdown content: news
// entries and job listings kept under content/<kind>/<lang>/<slug>.md
// with YAML front matter. Lookups degrade the same way translations
// do: a page missing in the requested language falls back to the
// default language before giving up.
package cms

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"miraiworks.jp/mirai-web/internal/i18n"
)

// ErrNotFound marks a slug absent in the requested and default language.
var ErrNotFound = errors.New("cms: not found")

// Entry is one localized content page, body already rendered and
// sanitized to HTML.
type Entry struct {
	Kind           string
	Slug           string
	Lang           i18n.Language
	Title          string
	Summary        string
	Body           string // sanitized HTML
	Excerpt        string // plain text, for meta descriptions
	Tags           []string
	EmploymentType string // jobs only
	Region         string // jobs only
	SalaryMinor    int64  // jobs only, monthly, in the currency's minor unit
	SalaryCurrency string // jobs only, ISO 4217
	PublishAt      time.Time
	UpdatedAt      time.Time
	SEO            EntrySEO
}

// EntrySEO holds optional metadata overrides for an entry.
type EntrySEO struct {
	Title       string
	Description string
	OGImage     string
	Keywords    []string
}

type frontMatter struct {
	Title          string   `yaml:"title"`
	Summary        string   `yaml:"summary"`
	Date           string   `yaml:"date"`
	Updated        string   `yaml:"updated"`
	Tags           []string `yaml:"tags"`
	EmploymentType string   `yaml:"employment_type"`
	Region         string   `yaml:"region"`
	Salary         int64    `yaml:"salary"`
	SalaryCurrency string   `yaml:"salary_currency"`
	SEO            struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		OGImage     string   `yaml:"og_image"`
		Keywords    []string `yaml:"keywords"`
	} `yaml:"seo"`
}

const defaultCacheTTL = 5 * time.Minute

// Store reads, renders, and caches content entries. Safe for
// concurrent use.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	entry   Entry
	expires time.Time
}

// NewStore creates a store over dir (typically "content").
func NewStore(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "content"
	}
	return &Store{
		dir:   dir,
		cache: map[string]cacheEntry{},
		ttl:   defaultCacheTTL,
	}
}

// SetCacheTTL overrides the in-memory cache duration (primarily for tests).
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// Get fetches one entry, falling back to the default language when the
// requested one has no document for the slug.
func (s *Store) Get(kind, slug string, lang i18n.Language) (Entry, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	slug = sanitizeSlug(slug)
	if kind == "" || slug == "" {
		return Entry{}, ErrNotFound
	}
	e, err := s.load(kind, slug, lang)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, ErrNotFound) || lang == i18n.Default {
		return Entry{}, err
	}
	return s.load(kind, slug, i18n.Default)
}

// List returns all entries of kind visible in lang: everything the
// default language has, localized where a translation exists, newest
// first.
func (s *Store) List(kind string, lang i18n.Language) ([]Entry, error) {
	slugs, err := s.slugs(kind, i18n.Default)
	if err != nil {
		return nil, err
	}
	if lang != i18n.Default {
		localized, err := s.slugs(kind, lang)
		if err != nil {
			return nil, err
		}
		for sl := range localized {
			slugs[sl] = struct{}{}
		}
	}
	entries := make([]Entry, 0, len(slugs))
	for sl := range slugs {
		e, err := s.Get(kind, sl, lang)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].PublishAt.Equal(entries[j].PublishAt) {
			return entries[i].PublishAt.After(entries[j].PublishAt)
		}
		return entries[i].Slug < entries[j].Slug
	})
	return entries, nil
}

func (s *Store) slugs(kind string, lang i18n.Language) (map[string]struct{}, error) {
	dir := filepath.Join(s.dir, kind, string(lang))
	out := map[string]struct{}{}
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("cms: read dir %s: %w", dir, err)
	}
	for _, it := range items {
		if it.IsDir() || !strings.HasSuffix(it.Name(), ".md") {
			continue
		}
		out[strings.TrimSuffix(it.Name(), ".md")] = struct{}{}
	}
	return out, nil
}

func (s *Store) load(kind, slug string, lang i18n.Language) (Entry, error) {
	key := kind + "/" + string(lang) + "/" + slug
	if e, ok := s.cached(key); ok {
		return e, nil
	}

	file := filepath.Join(s.dir, kind, string(lang), slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("cms: read %s: %w", file, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Entry{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}

	html, err := renderMarkdown(body)
	if err != nil {
		return Entry{}, fmt.Errorf("cms: render %s: %w", file, err)
	}

	e := Entry{
		Kind:           kind,
		Slug:           slug,
		Lang:           lang,
		Title:          strings.TrimSpace(front.Title),
		Summary:        strings.TrimSpace(front.Summary),
		Body:           html,
		Excerpt:        excerpt(html, excerptLimit),
		Tags:           front.Tags,
		EmploymentType: strings.TrimSpace(front.EmploymentType),
		Region:         strings.TrimSpace(front.Region),
		SalaryMinor:    front.Salary,
		SalaryCurrency: strings.ToUpper(strings.TrimSpace(front.SalaryCurrency)),
		PublishAt:      parseDate(front.Date),
		UpdatedAt:      parseDate(front.Updated),
		SEO: EntrySEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
			Keywords:    front.SEO.Keywords,
		},
	}
	if e.Title == "" {
		e.Title = prettifySlug(slug)
	}
	if e.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			e.UpdatedAt = info.ModTime()
		}
	}

	s.store(key, e)
	return e, nil
}

func (s *Store) cached(key string) (Entry, bool) {
	s.mu.RLock()
	ce, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(ce.expires) {
		return Entry{}, false
	}
	return ce.entry, true
}

func (s *Store) store(key string, e Entry) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{entry: e, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
