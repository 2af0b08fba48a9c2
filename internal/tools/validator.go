package tools

import (
	"fmt"

	"github.com/ledger-sage/ledger-sage/internal/dataset"
)

// Validator repairs category arguments produced by the model before a tool
// runs: wrong granularity (specific vs broad), casing, plurals, and near
// misses. Unrecognized names degrade to a remarks search so the tool still
// returns something useful.
type Validator struct {
	Resolver dataset.Resolver
}

// NewValidator returns a Validator with default matching thresholds.
func NewValidator() Validator {
	return Validator{Resolver: dataset.NewResolver()}
}

// Clean returns a corrected copy of args and a warning describing any fix.
// After Clean at most one of category, major_category, and remarks remains
// set. The legacy major_category key is accepted as input.
func (v Validator) Clean(args map[string]any, vocab dataset.Vocabulary) (map[string]any, string) {
	cleaned := make(map[string]any, len(args))
	for k, val := range args {
		cleaned[k] = val
	}

	input := stringArg(args, "category")
	if input == "" {
		input = stringArg(args, "major_category")
	}
	input = dataset.TrimCandidate(input)
	if input == "" {
		return cleaned, ""
	}

	kind, canonical, _ := v.Resolver.Resolve(input, vocab)
	switch kind {
	case dataset.MatchMajorCategory:
		delete(cleaned, "category")
		cleaned["major_category"] = canonical
		if input != canonical {
			return cleaned, fmt.Sprintf("Mapped '%s' to broad group '%s'", input, canonical)
		}
		return cleaned, ""
	case dataset.MatchCategory:
		delete(cleaned, "major_category")
		cleaned["category"] = canonical
		if input != canonical {
			return cleaned, fmt.Sprintf("Corrected '%s' to category '%s'", input, canonical)
		}
		return cleaned, ""
	default:
		delete(cleaned, "category")
		delete(cleaned, "major_category")
		cleaned["remarks"] = input
		return cleaned, fmt.Sprintf("'%s' not a category. Searching in remarks instead.", input)
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
