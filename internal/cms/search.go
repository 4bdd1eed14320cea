package cms

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"miraiworks.jp/mirai-web/internal/i18n"
)

// Search ranks entries of kind by fuzzy match of q against title,
// summary, and tags. An empty query matches nothing.
func (s *Store) Search(kind string, lang i18n.Language, q string) ([]Entry, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	entries, err := s.List(kind, lang)
	if err != nil {
		return nil, err
	}
	targets := make([]string, len(entries))
	for i, e := range entries {
		targets[i] = e.Title + " " + e.Summary + " " + strings.Join(e.Tags, " ")
	}
	ranks := fuzzy.RankFindNormalizedFold(q, targets)
	sort.Sort(ranks)
	out := make([]Entry, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, entries[r.OriginalIndex])
	}
	return out, nil
}
