package verkeep

import (
	"regexp"
	"strings"
)

// sigRe matches cosign-style signature tags: "sha256-<64 hex>.sig".
var sigRe = regexp.MustCompile(`^sha256-[0-9a-fA-F]{64}\.sig$`)

func isSigTag(s string) bool {
	return len(s) == 75 && sigRe.MatchString(s)
}

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitTokens splits a lowercased string on anything that is not [a-z0-9].
func splitTokens(s string) []string {
	return strings.FieldsFunc(toTok(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}

// joinDash joins parts with a dash.
func joinDash(parts []string) string {
	return strings.Join(parts, "-")
}

// capStrings returns out[:limit] when 0 < limit < len(out); otherwise out.
func capStrings(out []string, limit int) []string {
	if limit > 0 && limit < len(out) {
		return out[:limit]
	}

	return out
}
