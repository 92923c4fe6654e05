package verkeep

import (
	"slices"

	"github.com/woozymasta/verkeep/version"
)

// DefaultOptions returns a practical preset for stable releases:
//
//   - Policy:       NPM           // accept X, X.Y, wildcards and a leading 'v'
//   - ReleaseOnly:  true          // no suffix, no build
//   - Format:       FormatAll     // allow X, X.Y, X.Y.Z
//   - Normalize:    true          // compare X / X.Y as X.0.0 / X.Y.0
//   - Depth:        DepthMinor    // latest per (major, minor)
//   - Sort:         SortDesc      // newest first
//   - Deduplicate:  true          // collapse equivalent forms
//
// OutputCanonical is left false. Set it in your own Options for canonical
// "vMAJOR.MINOR.PATCH" output.
func DefaultOptions() Options {
	return Options{
		Policy:      version.PolicyNPM,
		ReleaseOnly: true,
		Format:      FormatAll,
		Normalize:   true,
		Depth:       DepthMinor,
		Sort:        SortDesc,
		Deduplicate: true,
	}
}

// Filter is Select with the input order preserved (Sort is ignored).
func Filter(in []string, opt Options) []string {
	opt.Sort = SortNone

	return Select(in, opt)
}

// Releases runs Select with DefaultOptions.
func Releases(in []string) []string {
	return Select(in, DefaultOptions())
}

// Latest returns a single latest stable release.
func Latest(in []string) []string {
	opt := DefaultOptions()
	opt.Depth = DepthLatest

	return Select(in, opt)
}

// LatestPerMajor returns the latest stable release for each major series.
func LatestPerMajor(in []string) []string {
	opt := DefaultOptions()
	opt.Depth = DepthMajor

	return Select(in, opt)
}

// ReleasesCanonical is Releases with canonical "vMAJOR.MINOR.PATCH" output.
func ReleasesCanonical(in []string) []string {
	opt := DefaultOptions()
	opt.OutputCanonical = true

	return Select(in, opt)
}

// Convert parses every string under policy p. Valid versions come back
// newest first; strings that failed to parse come back sorted.
func Convert(in []string, p version.Policy) (valid []version.Semver, invalid []string) {
	return convert(in, func(s string) (version.Semver, error) {
		return version.Parse(s, p)
	})
}

// ConvertLoose is Convert for loose versions.
func ConvertLoose(in []string, opts ...version.LooseOption) (valid []version.Loose, invalid []string) {
	return convert(in, func(s string) (version.Loose, error) {
		return version.ParseLoose(s, opts...)
	})
}

func convert[V version.Version[V]](in []string, parse func(string) (V, error)) (valid []V, invalid []string) {
	for _, s := range in {
		v, err := parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}

		valid = append(valid, v)
	}

	slices.SortStableFunc(valid, func(a, b V) int { return b.Compare(a) })
	slices.Sort(invalid)

	return valid, invalid
}

// Strings renders versions with String.
func Strings[V version.Version[V]](in []V) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.String()
	}

	return out
}
