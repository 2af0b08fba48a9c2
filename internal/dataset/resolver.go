package dataset

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MatchKind classifies what a candidate category string resolved to.
type MatchKind int

const (
	// MatchNone means the candidate matched neither vocabulary.
	MatchNone MatchKind = iota
	// MatchCategory means the candidate denotes a specific category.
	MatchCategory
	// MatchMajorCategory means the candidate denotes a broad group.
	MatchMajorCategory
)

// String returns a short name for logs.
func (k MatchKind) String() string {
	switch k {
	case MatchCategory:
		return "category"
	case MatchMajorCategory:
		return "major_category"
	default:
		return "unmatched"
	}
}

// Resolver fuzzy-matches free-text category strings against a dataset's
// vocabulary. The thresholds were carried over from the original tuning;
// nothing documents whether they were deliberate, so they stay configurable.
type Resolver struct {
	// FuzzyCutoff is the minimum similarity ratio for an approximate match.
	FuzzyCutoff float64
	// PluralConfidence is assigned to singular/plural heuristic matches.
	PluralConfidence float64
}

// NewResolver returns a Resolver with the default thresholds.
func NewResolver() Resolver {
	return Resolver{
		FuzzyCutoff:      0.8,
		PluralConfidence: 0.9,
	}
}

// Resolve matches a candidate against the vocabulary and reports what it
// denotes. Matching order: exact (confidence 1.0), singular/plural heuristic
// (0.9), similarity-ratio fuzzy match (0.8). When both vocabularies qualify,
// the major category wins ties at equal or better score, preferring the less
// granular interpretation. A candidate clearing neither vocabulary returns
// MatchNone with an empty canonical name.
func (r Resolver) Resolve(candidate string, vocab Vocabulary) (MatchKind, string, float64) {
	candidate = TrimCandidate(candidate)
	if candidate == "" {
		return MatchNone, "", 0
	}

	majorName, majorScore := r.bestMatch(candidate, vocab.majors)
	catName, catScore := r.bestMatch(candidate, vocab.categories)

	switch {
	case majorScore >= r.FuzzyCutoff && majorScore >= catScore:
		return MatchMajorCategory, majorName, majorScore
	case catScore >= r.FuzzyCutoff:
		return MatchCategory, catName, catScore
	default:
		return MatchNone, "", 0
	}
}

// bestMatch finds the best candidate in a lowercase->canonical lookup.
func (r Resolver) bestMatch(value string, lookup map[string]string) (string, float64) {
	if len(lookup) == 0 {
		return "", 0
	}
	lower := strings.ToLower(value)

	if canonical, ok := lookup[lower]; ok {
		return canonical, 1.0
	}

	// Singular/plural heuristics: "groceries" -> "grocery", "snacks" -> "snack".
	if strings.HasSuffix(lower, "ies") {
		if canonical, ok := lookup[lower[:len(lower)-3]+"y"]; ok {
			return canonical, r.PluralConfidence
		}
	}
	if strings.HasSuffix(lower, "s") {
		if canonical, ok := lookup[lower[:len(lower)-1]]; ok {
			return canonical, r.PluralConfidence
		}
	}

	// Approximate match: best single similarity ratio over the vocabulary.
	var bestKey string
	var bestRatio float64
	for key := range lookup {
		ratio := similarityRatio(lower, key)
		if ratio > bestRatio {
			bestRatio = ratio
			bestKey = key
		}
	}
	if bestRatio >= r.FuzzyCutoff {
		return lookup[bestKey], r.FuzzyCutoff
	}

	return "", 0
}

// similarityRatio computes the character-level sequence similarity of two
// strings in [0, 1].
func similarityRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}

// TrimCandidate strips the surrounding backticks, quotes, and whitespace an
// LLM tends to wrap category arguments in.
func TrimCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.Trim(s, "'")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
