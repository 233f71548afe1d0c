package cards

import (
	"fmt"
	"sort"

	"subdeck/internal/alignment"
	"subdeck/internal/chapters"
	"subdeck/internal/language"
	"subdeck/internal/textutil"
)

// WordOptions bounds the word-card output.
type WordOptions struct {
	MinTokenLength      int
	MaxTokensPerChapter int
	MaxExamplesPerToken int
	StopWords           language.StopSet
}

// BuildWords counts primary-text tokens per chapter and emits the most
// frequent ones. Chapters come out in ascending order; inside a chapter cards
// are ordered by descending frequency, ties kept in first-seen order.
func BuildWords(pairs []alignment.Pair, bucketer chapters.Bucketer, tok *textutil.Tokenizer, langs Languages, opts WordOptions) []WordCard {
	acc := newWordAccumulator(opts.MaxExamplesPerToken)
	for _, pair := range pairs {
		chapter := bucketer.ID(pair.Primary.Start)
		tokens := tok.Words(pair.Primary.Text, opts.MinTokenLength, opts.StopWords.Contains)
		if len(tokens) == 0 {
			continue
		}
		example := Example{
			Timestamp: chapters.Clock(pair.Primary.Start),
			Primary:   pair.Primary.Text,
			Secondary: pair.SecondaryText,
			Languages: langs,
		}
		for _, token := range tokens {
			acc.add(chapter, token, example)
		}
	}
	return acc.cards(opts.MaxTokensPerChapter, langs)
}

// wordAccumulator is owned by a single BuildWords call.
type wordAccumulator struct {
	maxExamples int
	chapters    map[int]*chapterTally
}

type chapterTally struct {
	order []*tokenTally
	index map[string]*tokenTally
}

type tokenTally struct {
	token    string
	freq     int
	examples []Example
}

func newWordAccumulator(maxExamples int) *wordAccumulator {
	if maxExamples < 0 {
		maxExamples = 0
	}
	return &wordAccumulator{maxExamples: maxExamples, chapters: make(map[int]*chapterTally)}
}

func (a *wordAccumulator) add(chapter int, token string, example Example) {
	ch, ok := a.chapters[chapter]
	if !ok {
		ch = &chapterTally{index: make(map[string]*tokenTally)}
		a.chapters[chapter] = ch
	}
	tally, ok := ch.index[token]
	if !ok {
		tally = &tokenTally{token: token, examples: make([]Example, 0, a.maxExamples)}
		ch.index[token] = tally
		ch.order = append(ch.order, tally)
	}
	tally.freq++
	if len(tally.examples) < a.maxExamples {
		tally.examples = append(tally.examples, example)
	}
}

func (a *wordAccumulator) cards(limit int, langs Languages) []WordCard {
	ids := make([]int, 0, len(a.chapters))
	for id := range a.chapters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []WordCard
	for _, id := range ids {
		ranked := make([]*tokenTally, len(a.chapters[id].order))
		copy(ranked, a.chapters[id].order)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].freq > ranked[j].freq
		})
		if limit >= 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}
		for _, tally := range ranked {
			out = append(out, WordCard{
				ID:        fmt.Sprintf("w_c%d_%s", id, tally.token),
				ChapterID: id,
				Token:     tally.token,
				Freq:      tally.freq,
				Examples:  tally.examples,
				Source:    Provenance{Primary: SourceWordPrimary, Secondary: SourceWordSecondary},
				Languages: langs,
			})
		}
	}
	return out
}
