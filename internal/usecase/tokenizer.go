package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Package-level compiled regex patterns for performance
var (
	// Matches the conjunction markers that separate two comparison subjects
	// ("và", "với", "and", "or", "vs", "versus").
	conjunctionPattern = regexp.MustCompile(`\s+và\s+|\s+với\s+|\s+or\s+|\s+and\s+|\s+vs\s+|\s+versus\s+`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// Minimum token lengths, counted in runes. Vietnamese trigger words are
// multi-byte, so byte lengths would overcount.
const (
	minKeywordLen        = 3 // tokens shorter than this are too generic to score
	minComparisonPartLen = 4 // conjunction-split parts shorter than this are dropped
	exactPhraseMinWords  = 3 // messages with this many words try an exact-phrase match first
)

// Normalize lowercases and trims a raw message. Every matcher and trigger
// check operates on the normalized form.
func Normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// Tokenize splits a normalized message into whitespace-separated tokens.
func Tokenize(message string) []string {
	return strings.Fields(Normalize(message))
}

// ExtractKeywords returns the tokens long enough to be discriminative for
// scoring. Short tokens are kept for exact substring checks elsewhere but
// excluded here.
func ExtractKeywords(message string) []string {
	words := Tokenize(message)

	var keywords []string
	for _, word := range words {
		if utf8.RuneCountInString(word) < minKeywordLen {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}

// SplitComparisonSubjects splits a message on conjunction markers into the
// candidate comparison subjects, dropping parts too short to name a product.
func SplitComparisonSubjects(message string) []string {
	parts := conjunctionPattern.Split(Normalize(message), -1)

	var subjects []string
	for _, part := range parts {
		part = strings.TrimSpace(multiSpacePattern.ReplaceAllString(part, " "))
		if utf8.RuneCountInString(part) < minComparisonPartLen {
			continue
		}
		subjects = append(subjects, part)
	}

	return subjects
}

// containsAny reports whether the normalized message contains any of the
// given trigger terms.
func containsAny(normalized string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
