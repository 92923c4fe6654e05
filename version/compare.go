package version

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns -1, 0 or +1 comparing v to o.
//
// Major, minor and patch compare numerically; an absent minor or patch sorts
// below any present value. At equal MAJOR.MINOR.PATCH a version without
// suffix tokens is greater than one with them. Suffix tokens compare as
// integers when both are numeric, otherwise as case-insensitive strings; if
// one token list is a prefix of the other, the longer list is greater.
// Build metadata never takes part.
func (v Semver) Compare(o Semver) int {
	if c := cmp.Compare(v.major, o.major); c != 0 {
		return c
	}

	if c := compareOptional(v.minor, v.HasMinor(), o.minor, o.HasMinor()); c != 0 {
		return c
	}

	if c := compareOptional(v.patch, v.HasPatch(), o.patch, o.HasPatch()); c != 0 {
		return c
	}

	return compareSuffix(v.suffix, o.suffix)
}

// IsGreaterThan reports whether v sorts after o.
func (v Semver) IsGreaterThan(o Semver) bool { return v.Compare(o) > 0 }

// IsLowerThan reports whether v sorts before o.
func (v Semver) IsLowerThan(o Semver) bool { return v.Compare(o) < 0 }

// IsEqualTo reports whether v and o compare equal and carry the same build.
// Spelling is not significant: "01.2.3" equals "1.2.3", and under NPM "1.x"
// equals "1".
func (v Semver) IsEqualTo(o Semver) bool {
	return v.Compare(o) == 0 && v.build == o.build
}

// IsEquivalentTo is IsEqualTo with build metadata ignored.
func (v Semver) IsEquivalentTo(o Semver) bool { return v.Compare(o) == 0 }

// Diff returns the coarsest tier that differs between v and o.
// Suffix tokens are compared exactly here, unlike Compare.
func (v Semver) Diff(o Semver) Diff {
	switch {
	case v.major != o.major:
		return DiffMajor
	case !sameOptional(v.minor, v.HasMinor(), o.minor, o.HasMinor()):
		return DiffMinor
	case !sameOptional(v.patch, v.HasPatch(), o.patch, o.HasPatch()):
		return DiffPatch
	case !slices.Equal(v.suffix, o.suffix):
		return DiffSuffix
	case v.build != o.build:
		return DiffBuild
	default:
		return DiffNone
	}
}

// compareOptional orders an absent component below a present one.
func compareOptional(a int, okA bool, b int, okB bool) int {
	switch {
	case okA && okB:
		return cmp.Compare(a, b)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return 0
	}
}

func sameOptional(a int, okA bool, b int, okB bool) bool {
	return okA == okB && (!okA || a == b)
}

func compareSuffix(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1 // stable beats pre-release
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareToken(a[i], b[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(a), len(b))
}

func compareToken(a, b string) int {
	na, okA := atoi(a)
	nb, okB := atoi(b)
	if okA && okB {
		return cmp.Compare(na, nb)
	}

	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}
