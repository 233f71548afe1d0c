package cards

import (
	"fmt"

	"subdeck/internal/alignment"
	"subdeck/internal/chapters"
)

// BuildPhrases emits one card per aligned pair, in pair order, with ids
// p_0001, p_0002, ... No pair is filtered out.
func BuildPhrases(pairs []alignment.Pair, bucketer chapters.Bucketer, langs Languages) []PhraseCard {
	out := make([]PhraseCard, 0, len(pairs))
	for i, pair := range pairs {
		out = append(out, PhraseCard{
			ID:        fmt.Sprintf("p_%04d", i+1),
			ChapterID: bucketer.ID(pair.Primary.Start),
			Start:     pair.Primary.Start,
			End:       pair.Primary.End,
			Timestamp: chapters.Clock(pair.Primary.Start),
			Primary:   pair.Primary.Text,
			Secondary: pair.SecondaryText,
			Source:    Provenance{Primary: SourcePhrasePrimary, Secondary: SourcePhraseSecondary},
			Languages: langs,
		})
	}
	return out
}
