package cards

import (
	"sort"

	"subdeck/internal/chapters"
)

// ChapterSummary aggregates the cards of one chapter for reporting.
type ChapterSummary struct {
	Chapter   int      `json:"chapter"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Phrases   int      `json:"phrases"`
	Unmatched int      `json:"unmatched"`
	Words     int      `json:"words"`
	TopWords  []string `json:"topWords"`
}

// Summarize groups cards by chapter and labels each chapter with the clock
// span the bucketer assigns it. At most topN words per chapter are listed, in
// card order.
func Summarize(phrases []PhraseCard, words []WordCard, bucketer chapters.Bucketer, topN int) []ChapterSummary {
	byChapter := make(map[int]*ChapterSummary)
	get := func(id int) *ChapterSummary {
		s, ok := byChapter[id]
		if !ok {
			start, end := bucketer.Bounds(id)
			s = &ChapterSummary{Chapter: id, From: chapters.Clock(start), To: chapters.Clock(end)}
			byChapter[id] = s
		}
		return s
	}
	for _, card := range phrases {
		s := get(card.ChapterID)
		s.Phrases++
		if card.Secondary == "" {
			s.Unmatched++
		}
	}
	for _, card := range words {
		s := get(card.ChapterID)
		s.Words++
		if len(s.TopWords) < topN {
			s.TopWords = append(s.TopWords, card.Token)
		}
	}
	out := make([]ChapterSummary, 0, len(byChapter))
	for _, s := range byChapter {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chapter < out[j].Chapter })
	return out
}
