package recommend

import (
	"regexp"
	"strings"
)

// Stop words to filter out when tokenizing free-text profile fields
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// Profile fields mix comma, semicolon, and CJK delimiters.
var tokenSplitter = regexp.MustCompile(`[,，、;；\s]+`)

// tokenizeAndFilter splits text on delimiters, lowercases, trims
// punctuation, and removes stop words and empty tokens.
func tokenizeAndFilter(text string) []string {
	words := tokenSplitter.Split(text, -1)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// tokensMatch reports whether two tokens refer to the same topic.
// Besides exact equality, one token containing the other counts, so
// "learning" matches "machine-learning" style composites.
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) >= 3 && len(b) >= 3 {
		return strings.Contains(a, b) || strings.Contains(b, a)
	}
	return false
}

// overlapRatio computes the fraction of subject tokens that match at
// least one candidate token. Returns 0 when either side is empty.
func overlapRatio(subject, candidate []string) float64 {
	if len(subject) == 0 || len(candidate) == 0 {
		return 0
	}

	matched := 0
	for _, s := range subject {
		for _, c := range candidate {
			if tokensMatch(s, c) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(subject))
}
