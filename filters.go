package verkeep

import (
	"cmp"
	"slices"
	"strings"

	"github.com/woozymasta/verkeep/version"
)

// rec is an internal record carrying raw tag, input index, and parsed version.
type rec[V any] struct {
	raw string // raw input string
	ver V      // parsed value
	idx int    // position after the raw prefilter
}

func recVer[V any](r rec[V]) V { return r.ver }

// * raw prefilter (cheap, string-only)

// preFilterRaw applies VPrefix / Include / Exclude / signature drop (when requested).
func preFilterRaw(in []string, opt Options) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !acceptVPrefix(s, opt.VPrefix) {
			continue
		}

		if opt.Include != nil && !opt.Include.MatchString(s) {
			continue
		}

		if opt.Exclude != nil && opt.Exclude.MatchString(s) {
			continue
		}

		if opt.ExcludeSignatures && isSigTag(s) {
			continue
		}

		out = append(out, s)
	}

	return out
}

// * parsing

// parseAll parses every tag once. Failures are returned in input order.
func parseAll[V version.Version[V]](in []string, parse func(string) (V, error)) ([]rec[V], []string) {
	rs := make([]rec[V], 0, len(in))
	var invalid []string

	for idx, s := range in {
		v, err := parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}

		rs = append(rs, rec[V]{raw: s, ver: v, idx: idx})
	}

	return rs, invalid
}

// * release gating

// filterReleaseOnly keeps only releases and checks the X/XY/XYZ form mask.
func filterReleaseOnly[V version.Version[V]](in []rec[V], isRelease func(V) bool, fm Format) []rec[V] {
	out := in[:0]
	for _, r := range in {
		if !isRelease(r.ver) {
			continue
		}

		if fm != 0 && formOf(r.ver)&fm == 0 {
			continue
		}

		out = append(out, r)
	}

	return out
}

// * dedup

// deduplicate collapses records that compare equal, keeping the earliest input.
// The result is ordered newest first.
func deduplicate[V version.Version[V]](in []rec[V]) []rec[V] {
	if len(in) < 2 {
		return in
	}

	slices.SortStableFunc(in, func(a, b rec[V]) int {
		return b.ver.Compare(a.ver)
	})

	return slices.CompactFunc(in, func(a, b rec[V]) bool {
		return a.ver.Compare(b.ver) == 0
	})
}

// * sorting

// sortRecs orders records for output. Ties on version fall back to the raw
// tag and then input position.
func sortRecs[V version.Version[V]](in []rec[V], mode SortMode) {
	if mode == SortNone {
		slices.SortFunc(in, func(a, b rec[V]) int { return cmp.Compare(a.idx, b.idx) })
		return
	}

	sign := 1
	if mode == SortDesc {
		sign = -1
	}

	slices.SortFunc(in, func(a, b rec[V]) int {
		if c := a.ver.Compare(b.ver); c != 0 {
			return sign * c
		}

		if c := strings.Compare(a.raw, b.raw); c != 0 {
			return sign * c
		}

		return cmp.Compare(a.idx, b.idx)
	})
}

// * output

func render[V any](in []rec[V], canonical func(V) string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if canonical != nil {
			out = append(out, canonical(r.ver))
		} else {
			out = append(out, r.raw)
		}
	}

	return out
}
