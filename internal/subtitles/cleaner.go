package subtitles

import (
	"regexp"
	"strings"
)

var (
	markupTagPattern  = regexp.MustCompile(`<[^>]+>`)
	overridePattern   = regexp.MustCompile(`\{\\.*?\}`)
	annotationPattern = regexp.MustCompile(`\[[^\]]+\]`)
)

const musicalNote = "♪"

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// CleanText strips inline markup, styling overrides, bracketed annotations and
// musical notes from subtitle text and collapses whitespace to single spaces.
// The result is a fixed point: cleaning it again returns it unchanged.
func CleanText(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = markupTagPattern.ReplaceAllString(text, "")
	text = overridePattern.ReplaceAllString(text, "")
	text = annotationPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, musicalNote, " ")
	return strings.Join(strings.Fields(text), " ")
}

// IsAdvertisement reports whether cleaned cue text looks like a subtitle-site
// banner rather than dialogue.
func IsAdvertisement(text string) bool {
	payload := strings.TrimSpace(strings.ToLower(text))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
