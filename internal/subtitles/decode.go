package subtitles

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
	EncodingLatin9      = "iso-8859-15"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw subtitle bytes into text. "auto" honours byte-order
// marks, keeps valid UTF-8 as-is, and falls back to Windows-1252 which is what
// most legacy European SRT files use. Invalid UTF-8 sequences are replaced
// with U+FFFD rather than rejected.
func Decode(raw []byte, name string) (string, error) {
	name = NormalizeEncoding(name)
	switch name {
	case EncodingAuto:
		if hasBOM(raw) {
			return decodeWith(raw, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		}
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return decodeWith(raw, charmap.Windows1252.NewDecoder())
	case EncodingUTF8:
		out, err := decodeWith(raw, unicode.UTF8BOM.NewDecoder())
		if err != nil {
			return "", err
		}
		return strings.ToValidUTF8(out, "�"), nil
	}
	enc, ok := legacyEncoding(name)
	if !ok {
		return "", fmt.Errorf("unsupported input encoding %q", name)
	}
	return decodeWith(raw, enc.NewDecoder())
}

// NormalizeEncoding canonicalizes user supplied encoding names.
func NormalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		return EncodingAuto
	case "utf8", "utf-8":
		return EncodingUTF8
	case "cp1252", "windows-1252", "windows1252":
		return EncodingWindows1252
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1
	case "latin9", "latin-9", "iso-8859-15", "iso8859-15":
		return EncodingLatin9
	default:
		return name
	}
}

// SupportedEncoding reports whether Decode accepts the encoding name.
func SupportedEncoding(name string) bool {
	switch NormalizeEncoding(name) {
	case EncodingAuto, EncodingUTF8:
		return true
	}
	_, ok := legacyEncoding(NormalizeEncoding(name))
	return ok
}

func legacyEncoding(name string) (encoding.Encoding, bool) {
	switch name {
	case EncodingWindows1252:
		return charmap.Windows1252, true
	case EncodingLatin1:
		return charmap.ISO8859_1, true
	case EncodingLatin9:
		return charmap.ISO8859_15, true
	default:
		return nil, false
	}
}

func hasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bomUTF8) || bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE)
}

func decodeWith(raw []byte, t transform.Transformer) (string, error) {
	out, _, err := transform.Bytes(t, raw)
	if err != nil {
		return "", fmt.Errorf("decode subtitle bytes: %w", err)
	}
	return string(out), nil
}
