/*
Package version parses, compares and edits version strings.

Two shapes are provided:

  - Semver: MAJOR.MINOR.PATCH[-SUFFIX][+BUILD] parsed under a Policy
    (PolicyStrict, PolicyLoose, PolicyNPM or PolicyIvy).
  - Loose: up to three separator-delimited segments where every segment may
    carry a free-form suffix ("1a.2b.3v", "3.2.2.Final").

Both are immutable values. Every With and Next method returns a new value
built by re-parsing its textual form, so derived values are validated
exactly like parsed ones.

Ordering notes:
  - Semver: an absent minor or patch sorts below any present one; a version
    without suffix tokens outranks the same MAJOR.MINOR.PATCH with tokens;
    build metadata is ignored.
  - Loose: within a tier, absent sorts above empty, and empty above
    non-empty. Two non-empty suffixes compare in reverse string order.

Example:

	v := version.MustParse("1.2.3-beta.4+sha.5114f85", version.PolicyStrict)
	next := v.NextMinor()                  // 1.3.0
	fmt.Println(v.Diff(next))              // minor
	fmt.Println(v.IsLowerThan(next))       // true
	fmt.Println(v.WithClearedBuild())      // 1.2.3-beta.4
*/
package version

import "fmt"

// Version is the contract shared by Semver and Loose. It is what the
// retention filter and the tag selection pipeline operate on.
type Version[V any] interface {
	fmt.Stringer

	// Compare returns -1, 0 or +1.
	Compare(other V) int
	// Diff returns the coarsest differing tier.
	Diff(other V) Diff

	Major() int
	Minor() (int, bool)
	Patch() (int, bool)
}

var (
	_ Version[Semver] = Semver{}
	_ Version[Loose]  = Loose{}
)
