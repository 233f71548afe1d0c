package cards

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"subdeck/internal/alignment"
	"subdeck/internal/chapters"
	"subdeck/internal/language"
	"subdeck/internal/subtitles"
	"subdeck/internal/textutil"
)

var itDe = Languages{Primary: "it", Secondary: "de"}

func pair(start, end float64, text, secondary string) alignment.Pair {
	return alignment.Pair{
		Primary:       subtitles.Segment{Start: start, End: end, Text: text},
		SecondaryText: secondary,
	}
}

func mustBucketer(t *testing.T, minutes float64) chapters.Bucketer {
	t.Helper()
	b, err := chapters.NewBucketer(minutes)
	if err != nil {
		t.Fatalf("NewBucketer: %v", err)
	}
	return b
}

func wordOptions(extra ...string) WordOptions {
	return WordOptions{
		MinTokenLength:      3,
		MaxTokensPerChapter: 80,
		MaxExamplesPerToken: 2,
		StopWords:           language.NewStopSet("it", extra...),
	}
}

func TestLanguagesValidate(t *testing.T) {
	if err := itDe.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Languages{Primary: "it", Secondary: "IT"}).Validate(); err == nil {
		t.Fatal("expected error for identical languages")
	}
	if err := (Languages{Primary: "it"}).Validate(); err == nil {
		t.Fatal("expected error for missing secondary")
	}
	for _, langs := range []Languages{
		{Primary: "id", Secondary: "de"},
		{Primary: "it", Secondary: "ID"},
		{Primary: "type", Secondary: "de"},
	} {
		if err := langs.Validate(); err == nil {
			t.Errorf("expected error for reserved code in %+v", langs)
		}
	}
}

func TestCardJSONKeepsMarkupCharacters(t *testing.T) {
	text := "Tom & Jerry <3 >_<"
	phrase := PhraseCard{ID: "p_0001", Primary: text, Secondary: "Tom & Jerry", Languages: itDe}
	word := WordCard{
		ID:        "w_0001",
		Token:     "tom",
		Examples:  []Example{{Timestamp: "00:00:01", Primary: text, Languages: itDe}},
		Languages: itDe,
	}
	for name, card := range map[string]any{"phrase": phrase, "word": word} {
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(card); err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		out := buf.String()
		if !strings.Contains(out, text) {
			t.Fatalf("%s: expected literal text %q in %s", name, text, out)
		}
		if strings.Contains(out, `\u0026`) || strings.Contains(out, `\u003c`) {
			t.Fatalf("%s: text was HTML-escaped: %s", name, out)
		}
	}
	raw, err := phrase.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if strings.HasSuffix(string(raw), "\n") {
		t.Fatalf("trailing newline in %q", raw)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["id"] != "p_0001" || decoded["it"] != text {
		t.Fatalf("unexpected card: %v", decoded)
	}
}

func TestBuildPhrases(t *testing.T) {
	pairs := []alignment.Pair{
		pair(0, 1, "ciao mondo", "hallo welt"),
		pair(425.7, 427, "di nuovo", ""),
	}
	cards := BuildPhrases(pairs, mustBucketer(t, 7), itDe)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].ID != "p_0001" || cards[1].ID != "p_0002" {
		t.Fatalf("unexpected ids %q %q", cards[0].ID, cards[1].ID)
	}
	if cards[1].ChapterID != 2 || cards[1].Timestamp != "00:07:05" {
		t.Fatalf("unexpected chapter/timestamp: %+v", cards[1])
	}
	if cards[1].Secondary != "" {
		t.Fatalf("expected empty secondary, got %q", cards[1].Secondary)
	}
}

func TestPhraseCardJSON(t *testing.T) {
	cards := BuildPhrases([]alignment.Pair{pair(1.5, 2, "perché?", "warum?")}, mustBucketer(t, 7), itDe)
	raw, err := json.Marshal(cards[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["it"] != "perché?" || decoded["de"] != "warum?" {
		t.Fatalf("unexpected text keys: %s", raw)
	}
	if decoded["type"] != "phrase" || decoded["timestamp"] != "00:00:01" {
		t.Fatalf("unexpected fields: %s", raw)
	}
	source, ok := decoded["source"].(map[string]any)
	if !ok || source["it"] != "srt" || source["de"] != "srt-aligned-window" {
		t.Fatalf("unexpected source: %s", raw)
	}
}

func TestBuildWordsExampleScenario(t *testing.T) {
	pairs := []alignment.Pair{
		pair(0.0, 1.0, "ciao mondo", "hallo welt"),
		pair(1.2, 2.0, "ciao di nuovo", ""),
	}
	cards := BuildWords(pairs, mustBucketer(t, 7), textutil.NewTokenizer("it"), itDe, wordOptions())
	got := make([]string, 0, len(cards))
	for _, card := range cards {
		got = append(got, fmt.Sprintf("%s=%d", card.Token, card.Freq))
	}
	want := "ciao=2,mondo=1,nuovo=1"
	if strings.Join(got, ",") != want {
		t.Fatalf("words = %v, want %s", got, want)
	}
	if cards[0].ID != "w_c1_ciao" || cards[0].ChapterID != 1 {
		t.Fatalf("unexpected first card: %+v", cards[0])
	}
	if len(cards[0].Examples) != 2 || cards[0].Examples[0].Secondary != "hallo welt" {
		t.Fatalf("unexpected examples: %+v", cards[0].Examples)
	}
}

func TestBuildWordsStopWordsAndLength(t *testing.T) {
	pairs := []alignment.Pair{pair(0, 1, "Harry, che cosa fai con la bacchetta?", "")}
	cards := BuildWords(pairs, mustBucketer(t, 7), textutil.NewTokenizer("it"), itDe, wordOptions("harry"))
	stop := language.NewStopSet("it", "harry")
	for _, card := range cards {
		if stop.Contains(card.Token) {
			t.Fatalf("stop word %q produced a card", card.Token)
		}
		if len([]rune(card.Token)) < 3 {
			t.Fatalf("short token %q produced a card", card.Token)
		}
	}
	tokens := make([]string, 0, len(cards))
	for _, card := range cards {
		tokens = append(tokens, card.Token)
	}
	if strings.Join(tokens, ",") != "cosa,fai,bacchetta" {
		t.Fatalf("tokens = %v", tokens)
	}
}

func TestBuildWordsFrequencyMatchesOccurrences(t *testing.T) {
	texts := []string{
		"la bacchetta sceglie il mago",
		"il mago sceglie la bacchetta? no, la bacchetta sceglie",
		"mago mago",
	}
	pairs := make([]alignment.Pair, 0, len(texts))
	for i, text := range texts {
		pairs = append(pairs, pair(float64(i*10), float64(i*10+5), text, ""))
	}
	cards := BuildWords(pairs, mustBucketer(t, 7), textutil.NewTokenizer("it"), itDe, wordOptions())
	want := map[string]int{"bacchetta": 3, "sceglie": 3, "mago": 4}
	if len(cards) != len(want) {
		t.Fatalf("expected %d cards, got %+v", len(want), cards)
	}
	for _, card := range cards {
		if card.Freq != want[card.Token] {
			t.Errorf("%s freq = %d, want %d", card.Token, card.Freq, want[card.Token])
		}
		if len(card.Examples) > 2 {
			t.Errorf("%s has %d examples", card.Token, len(card.Examples))
		}
	}
	if cards[0].Token != "mago" {
		t.Fatalf("expected most frequent token first, got %q", cards[0].Token)
	}
	if cards[1].Token != "bacchetta" || cards[2].Token != "sceglie" {
		t.Fatalf("expected ties in first-seen order, got %q %q", cards[1].Token, cards[2].Token)
	}
}

func TestBuildWordsChapterOrderAndLimit(t *testing.T) {
	pairs := []alignment.Pair{
		pair(500, 501, "secondo capitolo", ""),
		pair(10, 11, "primo capitolo alfa beta gamma", ""),
	}
	opts := wordOptions()
	opts.MaxTokensPerChapter = 2
	opts.MaxExamplesPerToken = 0
	cards := BuildWords(pairs, mustBucketer(t, 7), textutil.NewTokenizer("it"), itDe, opts)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	if cards[0].ChapterID != 1 || cards[1].ChapterID != 1 || cards[2].ChapterID != 2 || cards[3].ChapterID != 2 {
		t.Fatalf("chapters out of order: %+v", cards)
	}
	if cards[0].Token != "primo" || cards[1].Token != "capitolo" {
		t.Fatalf("unexpected chapter 1 tokens %q %q", cards[0].Token, cards[1].Token)
	}
	if len(cards[0].Examples) != 0 {
		t.Fatalf("expected no examples, got %d", len(cards[0].Examples))
	}
	raw, err := json.Marshal(cards[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"examples":[]`) {
		t.Fatalf("expected empty examples array: %s", raw)
	}
}

func TestWordCardJSON(t *testing.T) {
	pairs := []alignment.Pair{pair(3, 4, "buongiorno", "guten Morgen")}
	cards := BuildWords(pairs, mustBucketer(t, 7), textutil.NewTokenizer("it"), itDe, wordOptions())
	raw, err := json.Marshal(cards)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	card := decoded[0]
	if card["it"] != "buongiorno" || card["de"] != "" || card["type"] != "word" {
		t.Fatalf("unexpected card: %s", raw)
	}
	info, ok := card["wordInfo"].(map[string]any)
	if !ok || info["pos"] != "" || info["lemma"] != "" || info["infinitive"] != "" {
		t.Fatalf("unexpected wordInfo: %s", raw)
	}
	examples, ok := card["examples"].([]any)
	if !ok || len(examples) != 1 {
		t.Fatalf("unexpected examples: %s", raw)
	}
	example := examples[0].(map[string]any)
	if example["timestamp"] != "00:00:03" || example["de"] != "guten Morgen" {
		t.Fatalf("unexpected example: %s", raw)
	}
	source := card["source"].(map[string]any)
	if source["it"] != "srt-derived" || source["de"] != "manual/override-or-api-later" {
		t.Fatalf("unexpected source: %s", raw)
	}
}

func TestSummarize(t *testing.T) {
	b := mustBucketer(t, 7)
	phrases := BuildPhrases([]alignment.Pair{
		pair(1, 2, "ciao mondo", "hallo"),
		pair(3, 4, "ciao ancora", ""),
		pair(430, 431, "arrivederci", "tschüss"),
	}, b, itDe)
	words := []WordCard{
		{ChapterID: 1, Token: "ciao"},
		{ChapterID: 1, Token: "mondo"},
		{ChapterID: 1, Token: "ancora"},
		{ChapterID: 2, Token: "arrivederci"},
	}
	summary := Summarize(phrases, words, b, 2)
	if len(summary) != 2 {
		t.Fatalf("expected 2 chapters, got %+v", summary)
	}
	first := summary[0]
	if first.Chapter != 1 || first.Phrases != 2 || first.Unmatched != 1 || first.Words != 3 {
		t.Fatalf("unexpected chapter 1 summary: %+v", first)
	}
	if strings.Join(first.TopWords, ",") != "ciao,mondo" {
		t.Fatalf("unexpected top words: %v", first.TopWords)
	}
	if first.From != "00:00:00" || first.To != "00:07:00" {
		t.Fatalf("unexpected chapter 1 span: %s-%s", first.From, first.To)
	}
	if summary[1].From != "00:07:00" || summary[1].To != "00:14:00" {
		t.Fatalf("unexpected chapter 2 span: %s-%s", summary[1].From, summary[1].To)
	}
	if summary[1].Chapter != 2 || summary[1].Phrases != 1 {
		t.Fatalf("unexpected chapter 2 summary: %+v", summary[1])
	}
}
