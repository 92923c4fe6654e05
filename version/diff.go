package version

import (
	"fmt"
	"strings"
)

// Diff names the coarsest tier along which two versions differ.
type Diff uint8

const (
	// DiffNone means the versions are identical, build included.
	DiffNone Diff = iota
	// DiffMajor means the major component differs.
	DiffMajor
	// DiffMinor means the minor component differs.
	DiffMinor
	// DiffPatch means the patch component differs.
	DiffPatch
	// DiffSuffix means the pre-release tokens differ.
	DiffSuffix
	// DiffBuild means only the build metadata differs.
	DiffBuild
)

// String returns a stable textual representation for Diff.
func (d Diff) String() string {
	switch d {
	case DiffMajor:
		return "major"
	case DiffMinor:
		return "minor"
	case DiffPatch:
		return "patch"
	case DiffSuffix:
		return "suffix"
	case DiffBuild:
		return "build"
	default:
		return "none"
	}
}

// ParseDiff is the inverse of Diff.String (case-insensitive).
func ParseDiff(s string) (Diff, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return DiffNone, nil
	case "major":
		return DiffMajor, nil
	case "minor":
		return DiffMinor, nil
	case "patch":
		return DiffPatch, nil
	case "suffix", "pre", "prerelease":
		return DiffSuffix, nil
	case "build", "meta":
		return DiffBuild, nil
	default:
		return DiffNone, fmt.Errorf("unknown diff tier %q", s)
	}
}
