package verkeep

import (
	"errors"
	"fmt"

	"github.com/woozymasta/verkeep/version"
)

// Range clips versions to [Min, Max] with optional exclusive ends.
// For semantic versions Min/Max accept X, X.Y, X.Y.Z (with optional 'v') or a
// full version with suffix. For loose versions they are parsed like the tags.
type Range struct {
	Min string // empty => no lower bound
	Max string // empty => no upper bound

	// When true => exclusive bound. Default false => inclusive.
	MinExclusive bool
	MaxExclusive bool

	// When Min is shorthand (X or X.Y), include pre-releases at the floor by using "-0".
	// E.g. Min="1.2" + IncludePrerelease=true => lower floor is "1.2.0-0".
	IncludePrerelease bool
}

// Enabled reports whether at least one bound is set.
func (r Range) Enabled() bool {
	return r.Min != "" || r.Max != ""
}

// bound is one compiled end of a Range.
type bound[V any] struct {
	v         V
	ok        bool
	exclusive bool
}

// admits reports whether a comparison result against this bound passes.
// dir is -1 for a floor and +1 for a ceiling.
func (b bound[V]) admits(c, dir int) bool {
	if !b.ok {
		return true
	}

	if c == 0 {
		return !b.exclusive
	}

	return c != dir
}

// applyRange keeps records inside [lo, hi]. Candidates are compared in their
// normalized form so "1.2" meets a "1.2.0" floor.
func applyRange[V version.Version[V]](in []rec[V], lo, hi bound[V], norm func(V) V) []rec[V] {
	out := in[:0]
	for _, r := range in {
		v := norm(r.ver)
		if lo.ok && !lo.admits(v.Compare(lo.v), -1) {
			continue
		}

		if hi.ok && !hi.admits(v.Compare(hi.v), 1) {
			continue
		}

		out = append(out, r)
	}

	return out
}

// compileSemverRange turns r into a floor and a strict ceiling. Unparsable
// ends are reported in err and left disabled.
func compileSemverRange(r Range) (lo, hi bound[version.Semver], err error) {
	var errs []error
	if r.Min != "" {
		if lo, err = compileMin(r.Min, r.MinExclusive, r.IncludePrerelease); err != nil {
			errs = append(errs, err)
		}
	}

	if r.Max != "" {
		if hi, err = compileMax(r.Max, r.MaxExclusive); err != nil {
			errs = append(errs, err)
		}
	}

	return lo, hi, errors.Join(errs...)
}

func parseBound(raw string) (version.Semver, error) {
	v, err := version.Parse(raw, version.PolicyNPM)
	if err != nil {
		return version.Semver{}, fmt.Errorf("range bound: %w", err)
	}

	return v, nil
}

// compileMin builds X.0.0 / X.Y.0 floors for shorthands, optionally lowered
// to X.Y.0-0 so pre-releases of the floor are admitted.
func compileMin(raw string, exclusive, includePre bool) (bound[version.Semver], error) {
	v, err := parseBound(raw)
	if err != nil {
		return bound[version.Semver]{}, err
	}

	if v.HasPatch() {
		return bound[version.Semver]{v: v, ok: true, exclusive: exclusive}, nil
	}

	floor := v.ToStrict()
	if includePre {
		floor = withZeroSuffix(floor)
	}

	return bound[version.Semver]{v: floor, ok: true, exclusive: exclusive}, nil
}

// compileMax turns every upper bound into an exclusive ceiling:
//
//	X:      excl -> < X.0.0-0,  incl -> < (X+1).0.0-0
//	X.Y:    excl -> < X.Y.0-0,  incl -> < X.(Y+1).0-0
//	full:   excl -> < v,        incl -> < v.pre.0 or < X.Y.(Z+1)-0
func compileMax(raw string, exclusive bool) (bound[version.Semver], error) {
	v, err := parseBound(raw)
	if err != nil {
		return bound[version.Semver]{}, err
	}

	var ceil version.Semver
	switch {
	case !v.HasPatch() && exclusive:
		ceil = withZeroSuffix(v.ToStrict())
	case !v.HasPatch() && !v.HasMinor():
		ceil = withZeroSuffix(v.NextMajor())
	case !v.HasPatch():
		ceil = withZeroSuffix(v.NextMinor())
	case exclusive:
		ceil = v
	case v.HasSuffix():
		ceil, err = v.WithSuffix(v.SuffixString() + ".0")
		if err != nil {
			return bound[version.Semver]{}, fmt.Errorf("range bound: %w", err)
		}
	default:
		ceil = withZeroSuffix(v.NextPatch())
	}

	return bound[version.Semver]{v: ceil, ok: true, exclusive: true}, nil
}

// withZeroSuffix returns v-0, the lowest version sharing v's core.
func withZeroSuffix(v version.Semver) version.Semver {
	z, err := v.WithSuffix("0")
	if err != nil {
		panic(fmt.Sprintf("verkeep: %v", err))
	}

	return z
}

// compileLooseRange parses both ends with the tag parser and uses them as is.
func compileLooseRange(r Range, parse func(string) (version.Loose, error)) (lo, hi bound[version.Loose], err error) {
	var errs []error
	if r.Min != "" {
		v, perr := parse(r.Min)
		if perr != nil {
			errs = append(errs, fmt.Errorf("range bound: %w", perr))
		} else {
			lo = bound[version.Loose]{v: v, ok: true, exclusive: r.MinExclusive}
		}
	}

	if r.Max != "" {
		v, perr := parse(r.Max)
		if perr != nil {
			errs = append(errs, fmt.Errorf("range bound: %w", perr))
		} else {
			hi = bound[version.Loose]{v: v, ok: true, exclusive: r.MaxExclusive}
		}
	}

	return lo, hi, errors.Join(errs...)
}
