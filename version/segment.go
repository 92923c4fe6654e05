package version

import (
	"cmp"
	"strconv"
	"strings"
)

// Segment is one component of a Loose version: a leading number followed by
// an optional free-form suffix ("2b" is 2 and "b").
type Segment struct {
	suffix string
	lead   string // separator copies stripped between number and suffix

	number int

	hasNumber bool
	hasSuffix bool
}

// Number returns the numeric part and whether the segment has one.
func (s Segment) Number() (int, bool) { return s.number, s.hasNumber }

// Suffix returns the text after the number and whether there was any.
// A present suffix may be empty ("3." has an empty suffix).
func (s Segment) Suffix() (string, bool) { return s.suffix, s.hasSuffix }

// String prints the segment exactly as it was parsed.
func (s Segment) String() string {
	var b strings.Builder
	if s.hasNumber {
		b.WriteString(strconv.Itoa(s.number))
	}
	if s.hasSuffix {
		b.WriteString(s.lead)
		b.WriteString(s.suffix)
	}

	return b.String()
}

// parseSegment splits tok at its first non-digit byte. When digits are
// required and missing it returns ok=false.
func parseSegment(tok, sep string, needNumber bool) (Segment, bool) {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}

	var seg Segment
	if i > 0 {
		n, err := strconv.Atoi(tok[:i])
		if err != nil || n > maxComponent {
			return Segment{}, false
		}
		seg.number, seg.hasNumber = n, true
	} else if needNumber {
		return Segment{}, false
	}

	if i < len(tok) {
		rest := tok[i:]
		for strings.HasPrefix(rest, sep) {
			rest = rest[len(sep):]
			seg.lead += sep
		}
		seg.suffix, seg.hasSuffix = rest, true
	}

	return seg, true
}

// numberOrZero is used by the increment helpers; an absent number counts as 0.
func (s Segment) numberOrZero() int {
	if s.hasNumber {
		return s.number
	}

	return 0
}

func zeroSegment() Segment {
	return Segment{hasNumber: true}
}

func (s Segment) equal(o Segment) bool {
	return s.hasNumber == o.hasNumber && s.number == o.number &&
		s.hasSuffix == o.hasSuffix && s.suffix == o.suffix
}

// compareSegment orders two segments. An absent number sorts above a
// present one, and suffixes follow compareLooseSuffix.
func compareSegment(a, b Segment) int {
	switch {
	case a.hasNumber && b.hasNumber:
		if c := cmp.Compare(a.number, b.number); c != 0 {
			return c
		}
	case a.hasNumber:
		return -1
	case b.hasNumber:
		return 1
	}

	return compareLooseSuffix(a.suffix, a.hasSuffix, b.suffix, b.hasSuffix)
}

// compareLooseSuffix ranks absent > empty > non-empty. Two non-empty
// suffixes compare in reverse string order, so "1.0" outranks "1.0a".
func compareLooseSuffix(a string, okA bool, b string, okB bool) int {
	if c := cmp.Compare(suffixRank(a, okA), suffixRank(b, okB)); c != 0 {
		return c
	}

	if okA && okB && a != "" {
		return strings.Compare(b, a)
	}

	return 0
}

func suffixRank(s string, ok bool) int {
	switch {
	case !ok:
		return 2
	case s == "":
		return 1
	default:
		return 0
	}
}
