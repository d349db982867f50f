package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// charReplacementMap normalizes characters that show up when keys are pasted
// from documents, chat apps or PDFs.
var charReplacementMap = map[string]string{
	"\u00A0": " ", "\u2007": " ", "\u202F": " ",
	"\u2010": "-", "\u2011": "-", "\u2012": "-", "\u2013": "-", "\u2014": "-", "\u2212": "-",
	"\u2018": "'", "\u2019": "'", "\u201C": "\"", "\u201D": "\"",
	"\uFF20": "@", "\uFF0E": ".",
}

// invisible runes are dropped entirely.
var invisible = []string{"\uFEFF", "\u200B", "\u200C", "\u200D", "\u2060"}

// CleanInput trims a form field and normalizes pasted punctuation.
func CleanInput(s string) string {
	if !utf8.ValidString(s) {
		log.Warn("form input is not valid UTF-8, replacing invalid chars")
		s = strings.ToValidUTF8(s, "")
	}
	for _, r := range invisible {
		s = strings.ReplaceAll(s, r, "")
	}
	for bad, good := range charReplacementMap {
		s = strings.ReplaceAll(s, bad, good)
	}
	return strings.TrimSpace(s)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
