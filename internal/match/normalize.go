package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes a schema element name for fuzzy matching.
// The tokens of the name are lowercased and joined without separators, so
// "has_medical_history", "hasMedicalHistory" and "HasMedicalHistory" agree.
func NormalizeName(s string) string {
	return strings.Join(Tokenize(s), "")
}

// Tokenize splits a name into lowercase tokens on separators and case changes.
// Examples:
//   - "primary_email" -> ["primary", "email"]
//   - "MedicalEvent" -> ["medical", "event"]
//   - "CURIEPrefix" -> ["curie", "prefix"]
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new token begins at runes[i]: on a
// lower-to-upper transition, or at the last capital of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
