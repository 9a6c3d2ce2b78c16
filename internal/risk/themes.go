package risk

import "strings"

// DefaultHighRiskTokens is the built-in registry of theme tokens treated as
// high-risk. Hand-tuned; preserved as-is rather than re-derived.
func DefaultHighRiskTokens() []string {
	return []string{
		"crisis",
		"protest",
		"conflict",
		"violence",
		"war",
		"terrorism",
		"riot",
		"unrest",
		"sanctions",
		"embargo",
	}
}

// ThemeRegistry is the immutable high-risk theme lookup table. Build it once
// at startup and pass it by pointer into scoring components; it is never
// mutated after construction.
type ThemeRegistry struct {
	tokens []string
}

// NewThemeRegistry builds a registry from the given tokens, case-normalized.
// Empty tokens are dropped; an empty list falls back to the defaults.
func NewThemeRegistry(tokens []string) *ThemeRegistry {
	if len(tokens) == 0 {
		tokens = DefaultHighRiskTokens()
	}
	normalized := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			normalized = append(normalized, tok)
		}
	}
	return &ThemeRegistry{tokens: normalized}
}

// Tokens returns a copy of the registry's tokens.
func (r *ThemeRegistry) Tokens() []string {
	return append([]string(nil), r.tokens...)
}

// DistinctMatches returns the number of distinct theme identifiers
// (case-normalized, deduplicated) that contain at least one high-risk token.
func (r *ThemeRegistry) DistinctMatches(themes []string) int {
	seen := make(map[string]struct{}, len(themes))
	count := 0
	for _, theme := range themes {
		norm := strings.ToLower(theme)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		if r.matches(norm) {
			count++
		}
	}
	return count
}

// TotalOccurrences counts every (theme occurrence, token) match across the
// list, duplicates included: a theme listed twice contributes twice, and a
// theme containing two different tokens contributes two.
func (r *ThemeRegistry) TotalOccurrences(themes []string) int {
	total := 0
	for _, theme := range themes {
		norm := strings.ToLower(theme)
		for _, tok := range r.tokens {
			if strings.Contains(norm, tok) {
				total++
			}
		}
	}
	return total
}

func (r *ThemeRegistry) matches(normalizedTheme string) bool {
	for _, tok := range r.tokens {
		if strings.Contains(normalizedTheme, tok) {
			return true
		}
	}
	return false
}
