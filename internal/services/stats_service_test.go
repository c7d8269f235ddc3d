package services

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func reflectionsFor(ayahs []int, titles []string) []*Reflection {
	rs := make([]*Reflection, len(ayahs))
	for i, a := range ayahs {
		title := ""
		if i < len(titles) {
			title = titles[i]
		}
		rs[i] = &Reflection{AyahNumber: a, SymbolicTitle: title, ReflectionText: "نص التأمل هنا"}
	}
	return rs
}

func TestSummarizeCounts(t *testing.T) {
	s := Summarize(reflectionsFor([]int{6, 6, 10}, nil))
	if s.TotalCount != 3 {
		t.Fatalf("total: expected 3, got %d", s.TotalCount)
	}
	want := []AyahCount{{Ayah: 6, Count: 2}, {Ayah: 10, Count: 1}}
	if !reflect.DeepEqual(s.PerVerse, want) {
		t.Fatalf("per-verse: expected %v, got %v", want, s.PerVerse)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalCount != 0 || len(s.PerVerse) != 0 || len(s.TopWords) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestTopVersesTieBreak(t *testing.T) {
	per := perVerseFrequency(reflectionsFor([]int{10, 10, 6, 6, 99}, nil))
	top := TopVerses(per, 2)
	// 6 and 10 both have count 2: the lower verse number wins the tie.
	want := []AyahCount{{Ayah: 6, Count: 2}, {Ayah: 10, Count: 2}}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("expected %v, got %v", want, top)
	}
}

func TestTopWordsFilterAndCase(t *testing.T) {
	titles := []string{"كنز الصبر", "نور في الصبر", "ab الصبر"}
	s := Summarize(reflectionsFor([]int{1, 2, 3}, titles))

	byText := map[string]int{}
	for _, w := range s.TopWords {
		byText[w.Text] = w.Value
	}
	if byText["الصبر"] != 3 {
		t.Fatalf("expected الصبر=3, got %v", s.TopWords)
	}
	if _, ok := byText["في"]; ok {
		t.Fatal("two-codepoint token must be dropped")
	}
	if _, ok := byText["ab"]; ok {
		t.Fatal("short latin token must be dropped")
	}
	if s.TopWords[0].Text != "الصبر" {
		t.Fatalf("expected الصبر ranked first, got %q", s.TopWords[0].Text)
	}
}

func TestTopWordsCaseSensitive(t *testing.T) {
	s := Summarize(reflectionsFor([]int{1, 2}, []string{"Sabr", "sabr"}))
	if len(s.TopWords) != 2 {
		t.Fatalf("expected distinct case-sensitive tokens, got %v", s.TopWords)
	}
}

func TestTopWordsLimit(t *testing.T) {
	titles := make([]string, 60)
	ayahs := make([]int, 60)
	for i := range titles {
		titles[i] = fmt.Sprintf("word%03d", i)
		ayahs[i] = 1 + i%110
	}
	s := Summarize(reflectionsFor(ayahs, titles))
	if len(s.TopWords) != topWordsLimit {
		t.Fatalf("expected cap at %d, got %d", topWordsLimit, len(s.TopWords))
	}
}

func TestTopWordsTiesKeepFirstSeenOrder(t *testing.T) {
	s := Summarize(reflectionsFor([]int{1, 2, 3}, []string{"اول ثاني", "ثالث", "رابع"}))
	want := []string{"اول", "ثاني", "ثالث", "رابع"}
	got := make([]string, len(s.TopWords))
	for i, w := range s.TopWords {
		got[i] = w.Text
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("expected first-seen order %v, got %v", want, got)
	}
}

func TestPerVerseIgnoresSnapshotOrder(t *testing.T) {
	a := perVerseFrequency(reflectionsFor([]int{10, 6, 6, 99, 10}, nil))
	b := perVerseFrequency(reflectionsFor([]int{99, 10, 6, 10, 6}, nil))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("permutation changed the distribution: %v vs %v", a, b)
	}
}

func TestSummaryViaStore(t *testing.T) {
	store := &stubStore{}
	for _, a := range []int{18, 18, 18, 7} {
		if _, err := store.InsertReflection(&Reflection{AyahNumber: a, SymbolicTitle: "كنز الرقاد", ReflectionText: "نص التأمل هنا"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := NewStatsService(store)
	s, err := svc.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalCount != 4 {
		t.Fatalf("expected 4, got %d", s.TotalCount)
	}
	top := TopVerses(s.PerVerse, 1)
	if len(top) != 1 || top[0].Ayah != 18 {
		t.Fatalf("expected verse 18 on top, got %v", top)
	}

	svc = NewStatsService(&stubStore{failWith: errSentinel})
	if _, err := svc.Summary(); err == nil {
		t.Fatal("expected store error")
	}
}
