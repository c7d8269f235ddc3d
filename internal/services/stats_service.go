package services

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minWordLen is the shortest title token (in codepoints) that counts toward
// the word ranking.
const minWordLen = 3

// topWordsLimit caps the word ranking.
const topWordsLimit = 50

type StatsStore interface {
	ListReflections() ([]*Reflection, error)
}

// AyahCount is one bar of the per-verse distribution.
type AyahCount struct {
	Ayah  int `json:"ayah_number"`
	Count int `json:"count"`
}

// WordCount is one entry of the title word ranking.
type WordCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// StatsSummary is the aggregate view of a reflection snapshot.
type StatsSummary struct {
	TotalCount int         `json:"total_count"`
	PerVerse   []AyahCount `json:"per_verse"`
	TopWords   []WordCount `json:"top_words"`
}

// StatsService reads a point-in-time snapshot out of the store and reduces
// it. The snapshot is not transactionally isolated from concurrent writes;
// staleness at display time is accepted.
type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

func (s *StatsService) Summary() (*StatsSummary, error) {
	rs, err := s.store.ListReflections()
	if err != nil {
		return nil, storeFailure(err)
	}
	return Summarize(rs), nil
}

// Summarize is a pure function of the snapshot: the same records in the same
// order always produce identical output. Counts and the per-verse table do
// not depend on snapshot order at all; only word tie order does.
func Summarize(snapshot []*Reflection) *StatsSummary {
	return &StatsSummary{
		TotalCount: len(snapshot),
		PerVerse:   perVerseFrequency(snapshot),
		TopWords:   topWords(snapshot),
	}
}

// perVerseFrequency groups the snapshot by verse, verse number ascending.
func perVerseFrequency(snapshot []*Reflection) []AyahCount {
	counts := map[int]int{}
	for _, r := range snapshot {
		counts[r.AyahNumber]++
	}
	out := make([]AyahCount, 0, len(counts))
	for ayah, n := range counts {
		out = append(out, AyahCount{Ayah: ayah, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ayah < out[j].Ayah })
	return out
}

// TopVerses ranks verses by occurrence count descending, ties broken by
// verse number ascending so the "most chosen" listing is deterministic.
func TopVerses(perVerse []AyahCount, n int) []AyahCount {
	ranked := append([]AyahCount(nil), perVerse...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Ayah < ranked[j].Ayah
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// topWords tokenizes symbolic titles on whitespace, drops tokens shorter
// than three codepoints, and counts the rest case-sensitively. No stemming
// or normalization, so the output is stable for any script. Ties keep
// first-seen order.
func topWords(snapshot []*Reflection) []WordCount {
	counts := map[string]int{}
	order := []string{}
	for _, r := range snapshot {
		for _, word := range strings.Fields(r.SymbolicTitle) {
			if utf8.RuneCountInString(word) < minWordLen {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	out := make([]WordCount, 0, len(order))
	for _, word := range order {
		out = append(out, WordCount{Text: word, Value: counts[word]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > topWordsLimit {
		out = out[:topWordsLimit]
	}
	return out
}
