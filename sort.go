package verkeep

import (
	"slices"

	"github.com/woozymasta/verkeep/version"
)

// Sort orders tags by version precedence when every tag parses under
// policy p (a leading 'v' is accepted), otherwise falls back to a
// lexicographic sort. The input is not modified.
func Sort(in []string, mode SortMode, p version.Policy) []string {
	out := slices.Clone(in)
	if mode == SortNone || len(out) < 2 {
		return out
	}

	keys := make(map[string]version.Semver, len(out))
	for _, t := range out {
		v, err := version.Parse(trimV(t), p)
		if err != nil {
			return sortLex(out, mode)
		}
		keys[t] = v
	}

	slices.SortStableFunc(out, func(a, b string) int {
		c := keys[a].Compare(keys[b])
		if mode == SortDesc {
			return -c
		}

		return c
	})

	return out
}

// SortN sorts and then returns at most n items.
func SortN(in []string, mode SortMode, p version.Policy, n int) []string {
	return capStrings(Sort(in, mode, p), n)
}

// sortLex does a plain lexicographic sort as a fallback.
func sortLex(out []string, mode SortMode) []string {
	slices.Sort(out)
	if mode == SortDesc {
		slices.Reverse(out)
	}

	return out
}
