package verkeep

import (
	"slices"

	"github.com/woozymasta/verkeep/version"
)

// Select filters, retains, and sorts tags.
//
//  1. cheap raw prefilter (VPrefix/regex/signatures)
//  2. parse once with the configured Shape and Policy
//  3. ReleaseOnly/Format gate, Normalize, Range, Deduplicate
//  4. retention (Depth preset or Keep thresholds, optionally inverted)
//  5. Sort, render (raw or canonical), append invalid tags when KeepInvalid, Limit
func Select(in []string, opt Options) []string {
	out, _ := SelectWithInvalid(in, opt)

	return out
}

// SelectWithInvalid is Select that also returns the prefiltered tags that
// failed to parse, sorted lexicographically.
func SelectWithInvalid(in []string, opt Options) (selected, invalid []string) {
	opt = opt.normalized()

	raw := preFilterRaw(in, opt)
	if len(raw) == 0 {
		return nil, nil
	}

	if opt.Shape == ShapeLoose {
		return run(raw, opt, looseShape(opt))
	}

	return run(raw, opt, semverShape(opt))
}

func run[V version.Version[V]](raw []string, opt Options, sh shape[V]) (selected, invalid []string) {
	rs, invalid := parseAll(raw, sh.parse)
	slices.Sort(invalid)

	if opt.ReleaseOnly {
		rs = filterReleaseOnly(rs, sh.isRelease, opt.Format)
	}

	if opt.Normalize {
		for i := range rs {
			rs[i].ver = sh.normalize(rs[i].ver)
		}
	}

	if opt.Range.Enabled() && len(rs) > 0 {
		// unparsable bounds are left open
		lo, hi, _ := sh.bounds(opt.Range)
		rs = applyRange(rs, lo, hi, sh.normalize)
	}

	if opt.Deduplicate {
		rs = deduplicate(rs)
	}

	rs = retainFunc(rs, recVer[V], opt.retention(), opt.Invert)
	sortRecs(rs, opt.Sort)

	var canonical func(V) string
	if opt.OutputCanonical {
		canonical = sh.canonical
	}

	out := render(rs, canonical)
	if opt.KeepInvalid {
		out = append(out, invalid...)
	}

	return capStrings(out, opt.Limit), invalid
}
