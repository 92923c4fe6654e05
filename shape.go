package verkeep

import "github.com/woozymasta/verkeep/version"

// shape bundles the shape-specific hooks of the pipeline.
type shape[V version.Version[V]] struct {
	parse     func(string) (V, error)
	isRelease func(V) bool
	canonical func(V) string
	normalize func(V) V
	bounds    func(Range) (lo, hi bound[V], err error)
}

func semverShape(opt Options) shape[version.Semver] {
	p := opt.Policy

	return shape[version.Semver]{
		parse: func(s string) (version.Semver, error) {
			return version.Parse(trimV(s), p)
		},
		isRelease: version.Semver.IsRelease,
		canonical: version.Semver.Canonical,
		normalize: version.Semver.ToStrict,
		bounds:    compileSemverRange,
	}
}

func looseShape(opt Options) shape[version.Loose] {
	opts := []version.LooseOption{
		version.WithSeparator(opt.Separator),
		version.WithPolicy(opt.Policy),
	}

	parse := func(s string) (version.Loose, error) {
		return version.ParseLoose(trimV(s), opts...)
	}

	return shape[version.Loose]{
		parse:     parse,
		isRelease: version.Loose.IsRelease,
		canonical: version.Loose.String,
		normalize: func(v version.Loose) version.Loose { return v },
		bounds: func(r Range) (lo, hi bound[version.Loose], err error) {
			return compileLooseRange(r, parse)
		},
	}
}

// trimV drops one leading 'v'/'V' when a digit follows, so "v1.2" parses
// under every policy while "version" stays untouched.
func trimV(s string) string {
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && s[1] >= '0' && s[1] <= '9' {
		return s[1:]
	}

	return s
}
