package language

import (
	"strings"

	textlang "golang.org/x/text/language"
)

// defaultLetters is the token character class for languages without a
// dedicated entry.
const defaultLetters = `\p{L}'`

// profile describes one built-in language.
type profile struct {
	name    string
	letters string // regexp character-class body for word tokens; empty means defaultLetters
	aliases []string
}

// profiles is keyed by ISO 639-1 code. Aliases cover ISO 639-2 codes
// (terminology and bibliographic) and the language's own name.
var profiles = map[string]profile{
	"it": {"Italian", `a-zàèéìòóù'`, []string{"ita", "italian", "italiano"}},
	"de": {"German", "", []string{"deu", "ger", "german", "deutsch"}},
	"en": {"English", `a-z'`, []string{"eng", "english"}},
	"es": {"Spanish", "", []string{"spa", "spanish", "español"}},
	"fr": {"French", "", []string{"fra", "fre", "french", "français"}},
	"pt": {"Portuguese", "", []string{"por", "portuguese", "português"}},
	"nl": {"Dutch", "", []string{"nld", "dut", "dutch", "nederlands"}},
	"pl": {"Polish", "", []string{"pol", "polish", "polski"}},
	"sv": {"Swedish", "", []string{"swe", "swedish", "svenska"}},
	"da": {"Danish", "", []string{"dan", "danish", "dansk"}},
	"no": {"Norwegian", "", []string{"nor", "norwegian", "norsk"}},
	"fi": {"Finnish", "", []string{"fin", "finnish", "suomi"}},
	"ru": {"Russian", "", []string{"rus", "russian"}},
}

var aliasIndex = func() map[string]string {
	index := make(map[string]string)
	for code, p := range profiles {
		for _, alias := range p.aliases {
			index[alias] = code
		}
	}
	return index
}()

// resolve maps a code, alias or name to its built-in ISO 639-1 key.
func resolve(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := profiles[code]; ok {
		return code, true
	}
	iso, ok := aliasIndex[code]
	return iso, ok
}

// ToISO2 converts a language code or name to ISO 639-1. Codes outside the
// built-in table are resolved through the x/text registry; unknown 2-letter
// codes pass through and anything else yields "".
func ToISO2(code string) string {
	if iso, ok := resolve(code); ok {
		return iso
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 2 {
		return code
	}
	if len(code) == 3 {
		if base, err := textlang.ParseBase(code); err == nil {
			if iso := base.String(); len(iso) == 2 {
				return iso
			}
		}
	}
	return ""
}

// Known reports whether code maps to a built-in language.
func Known(code string) bool {
	_, ok := resolve(code)
	return ok
}

// DisplayName returns the English name of a built-in language, "Unknown" for
// blank input, or the uppercased code otherwise.
func DisplayName(code string) string {
	if iso, ok := resolve(code); ok {
		return profiles[iso].name
	}
	if code = strings.TrimSpace(code); code != "" {
		return strings.ToUpper(code)
	}
	return "Unknown"
}

// LetterClass returns the regexp character-class body describing the
// characters a word token may contain in the given language.
func LetterClass(code string) string {
	if iso, ok := resolve(code); ok && profiles[iso].letters != "" {
		return profiles[iso].letters
	}
	return defaultLetters
}

// Tag returns the x/text tag used for case mapping, or language.Und.
func Tag(code string) textlang.Tag {
	iso := ToISO2(code)
	if iso == "" {
		return textlang.Und
	}
	tag, err := textlang.Parse(iso)
	if err != nil {
		return textlang.Und
	}
	return tag
}
