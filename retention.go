package verkeep

import (
	"slices"

	"github.com/woozymasta/verkeep/version"
)

// Unlimited is a retention threshold that never drops.
const Unlimited = -1

// Keep holds per-tier retention thresholds. A negative count is Unlimited.
//
// Major caps distinct majors. Minor and Patch cap distinct minors per major
// and entries per minor for the newest major; PrevMajorMinor and
// PrevMajorPatch replace them once the walk crosses into an older major.
type Keep struct {
	Major          int
	Minor          int
	Patch          int
	PrevMajorMinor int
	PrevMajorPatch int
}

// KeepLatest uses the same minor and patch thresholds for every major.
func KeepLatest(major, minor, patch int) Keep {
	return Keep{
		Major:          major,
		Minor:          minor,
		Patch:          patch,
		PrevMajorMinor: minor,
		PrevMajorPatch: patch,
	}
}

// KeepAll retains every entry.
func KeepAll() Keep {
	return KeepLatest(Unlimited, Unlimited, Unlimited)
}

// below reports whether count is still under limit.
func below(count, limit int) bool {
	return limit < 0 || count < limit
}

// retainState is the accumulator folded over a descending sequence.
type retainState struct {
	prevMajor int
	prevMinor int

	majors  int
	minors  int
	patches int

	minorLimit int
	patchLimit int

	started     bool
	prevMinorOK bool
}

// step decides v and returns the next state. Rejected entries leave the
// state untouched.
func (s retainState) step(major, minor int, minorOK bool, k Keep) (retainState, bool) {
	if !s.started {
		return retainState{
			started:     true,
			prevMajor:   major,
			prevMinor:   minor,
			prevMinorOK: minorOK,
			majors:      1,
			minors:      1,
			patches:     1,
			minorLimit:  k.Minor,
			patchLimit:  k.Patch,
		}, k.Major != 0
	}

	switch {
	case major != s.prevMajor:
		if !below(s.majors, k.Major) {
			return s, false
		}
		s.prevMajor = major
		s.prevMinor, s.prevMinorOK = minor, minorOK
		s.majors++
		s.minors, s.patches = 1, 1
		s.minorLimit, s.patchLimit = k.PrevMajorMinor, k.PrevMajorPatch

	case minor != s.prevMinor || minorOK != s.prevMinorOK:
		if !below(s.minors, s.minorLimit) {
			return s, false
		}
		s.prevMinor, s.prevMinorOK = minor, minorOK
		s.minors++
		s.patches = 1

	default:
		if !below(s.patches, s.patchLimit) {
			return s, false
		}
		s.patches++
	}

	return s, true
}

// Retain returns the entries of in that survive the thresholds in k, newest
// first. With invert set it returns exactly the entries that would have been
// dropped. The input is not modified.
func Retain[V version.Version[V]](in []V, k Keep, invert bool) []V {
	return retainFunc(in, func(v V) V { return v }, k, invert)
}

// retainFunc is Retain over any element type that carries a version.
func retainFunc[T any, V version.Version[V]](in []T, ver func(T) V, k Keep, invert bool) []T {
	sorted := slices.Clone(in)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return ver(b).Compare(ver(a))
	})

	var (
		st   retainState
		out  = make([]T, 0, len(sorted))
		keep bool
	)
	for _, it := range sorted {
		v := ver(it)
		minor, ok := v.Minor()
		st, keep = st.step(v.Major(), minor, ok, k)
		if keep != invert {
			out = append(out, it)
		}
	}

	return out
}
