package resolver

import (
	"strings"
	"unicode"

	"go-greenhouse-autopilot/internal/ai"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

// MatchOption maps a raw model response onto one of the presented
// options. The result is always a member of options (options must be
// non-empty): exact match first, then normalized equality or
// containment in either direction, then the policy heuristics keyed on
// the question text, and finally the first option as the unconditional
// last resort. A required dropdown is never left empty.
func MatchOption(raw string, question string, options []string, policy ai.Policy) string {
	for _, opt := range options {
		if opt == raw {
			return opt
		}
	}

	if normRaw := normalizeText(raw); normRaw != "" {
		for _, opt := range options {
			normOpt := normalizeText(opt)
			if normOpt == normRaw ||
				strings.Contains(normOpt, normRaw) ||
				strings.Contains(normRaw, normOpt) {
				return opt
			}
		}
	}

	if opt, ok := policyMatch(question, options, policy); ok {
		return opt
	}

	return options[0]
}

// policyMatch applies the configured answer preferences for the
// sensitive closed-choice categories.
func policyMatch(question string, options []string, policy ai.Policy) (string, bool) {
	q := normalizeText(question)

	var patterns []string
	switch {
	case strings.Contains(q, "pronoun"):
		patterns = policy.Pronouns
	case strings.Contains(q, "gender"):
		patterns = policy.Gender
	case strings.Contains(q, "hispanic") || strings.Contains(q, "latino"):
		patterns = policy.Hispanic
	case strings.Contains(q, "race") || strings.Contains(q, "ethnicity"):
		patterns = policy.Ethnicity
	case strings.Contains(q, "veteran") || strings.Contains(q, "military"):
		patterns = policy.Veteran
	case strings.Contains(q, "disability"):
		patterns = policy.Disability
	default:
		return "", false
	}

	// equality beats containment so "male" cannot land on "Female"
	for _, pattern := range patterns {
		normPattern := normalizeText(pattern)
		for _, opt := range options {
			if normalizeText(opt) == normPattern {
				return opt, true
			}
		}
		for _, opt := range options {
			if containsToken(normalizeText(opt), normPattern) {
				return opt, true
			}
		}
	}
	return "", false
}

// containsToken reports whether pattern occurs in s on word boundaries,
// so the substring "male" inside "female" is not a hit.
func containsToken(s, pattern string) bool {
	if pattern == "" {
		return false
	}
	for idx := 0; ; {
		i := strings.Index(s[idx:], pattern)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(pattern)
		if (start == 0 || !isWordChar(rune(s[start-1]))) &&
			(end == len(s) || !isWordChar(rune(s[end]))) {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
