package version

import (
	"fmt"
	"strings"
)

// DefaultSeparator splits Loose segments unless WithSeparator says otherwise.
const DefaultSeparator = "."

// Loose is an immutable generalized version such as "1a.2b.3v" or
// "3.2.2.Final": up to three segments, each a number with an optional suffix.
type Loose struct {
	value string
	sep   string

	major, minor, patch Segment

	hasMinor, hasPatch bool
	policy             Policy
}

// LooseOption configures ParseLoose.
type LooseOption func(*looseConfig)

type looseConfig struct {
	sep    string
	policy Policy
}

// WithSeparator sets the segment separator (default ".").
func WithSeparator(sep string) LooseOption {
	return func(c *looseConfig) { c.sep = sep }
}

// WithPolicy sets the strictness. PolicyStrict demands three segments that all
// start with a number; every other policy only demands a numeric major.
func WithPolicy(p Policy) LooseOption {
	return func(c *looseConfig) { c.policy = p }
}

func newLooseConfig(opts []LooseOption) looseConfig {
	cfg := looseConfig{sep: DefaultSeparator, policy: PolicyLoose}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// ParseLoose parses s as a generalized version. Tokens past the third are
// kept in the patch segment, so "3.2.2.Final" has patch 2 with suffix "Final".
func ParseLoose(s string, opts ...LooseOption) (Loose, error) {
	return parseLoose(s, newLooseConfig(opts))
}

// MustParseLoose is like ParseLoose but panics on error.
func MustParseLoose(s string, opts ...LooseOption) Loose {
	v, err := ParseLoose(s, opts...)
	if err != nil {
		panic(fmt.Sprintf("MustParseLoose: %v", err))
	}

	return v
}

func parseLoose(s string, cfg looseConfig) (Loose, error) {
	if cfg.sep == "" {
		return Loose{}, invalid(s, ReasonEmptySep)
	}

	value := strings.TrimSpace(s)
	if value == "" {
		return Loose{}, invalid(s, ReasonEmpty)
	}

	strict := cfg.policy.requiresFull()
	toks := strings.SplitN(value, cfg.sep, 3)
	if strict {
		switch len(toks) {
		case 1:
			return Loose{}, invalid(s, ReasonNoMinor)
		case 2:
			return Loose{}, invalid(s, ReasonNoPatch)
		}
	}

	v := Loose{value: value, sep: cfg.sep, policy: cfg.policy}

	major, ok := parseSegment(toks[0], cfg.sep, true)
	if !ok {
		return Loose{}, invalid(s, ReasonNoMajor)
	}
	v.major = major

	for i, tok := range toks[1:] {
		if tok == "" {
			return Loose{}, invalid(s, ReasonEmptySegment)
		}

		seg, ok := parseSegment(tok, cfg.sep, strict)
		if !ok {
			return Loose{}, invalid(s, ReasonNonNumeric)
		}

		if i == 0 {
			v.minor, v.hasMinor = seg, true
		} else {
			v.patch, v.hasPatch = seg, true
		}
	}

	return v, nil
}

// String returns the trimmed input.
func (v Loose) String() string { return v.value }

// Separator returns the separator the value was parsed with.
func (v Loose) Separator() string { return v.sep }

// Policy returns the policy the value was parsed with.
func (v Loose) Policy() Policy { return v.policy }

// MajorSegment returns the first segment.
func (v Loose) MajorSegment() Segment { return v.major }

// MinorSegment returns the second segment and whether it exists.
func (v Loose) MinorSegment() (Segment, bool) { return v.minor, v.hasMinor }

// PatchSegment returns the third segment, including any re-joined tail.
func (v Loose) PatchSegment() (Segment, bool) { return v.patch, v.hasPatch }

// IsRelease reports whether no segment carries a suffix ("1.2.3" but not
// "1.2.3a" or "3.2.2.Final").
func (v Loose) IsRelease() bool {
	return !v.major.hasSuffix &&
		!(v.hasMinor && v.minor.hasSuffix) &&
		!(v.hasPatch && v.patch.hasSuffix)
}

// Major returns the numeric part of the major segment.
func (v Loose) Major() int { return v.major.number }

// Minor returns the numeric part of the minor segment, if both exist.
func (v Loose) Minor() (int, bool) {
	return v.minor.number, v.hasMinor && v.minor.hasNumber
}

// Patch returns the numeric part of the patch segment, if both exist.
func (v Loose) Patch() (int, bool) {
	return v.patch.number, v.hasPatch && v.patch.hasNumber
}

// Compare returns -1, 0 or +1 comparing v to o segment by segment.
// Within a tier an absent segment sorts above a present one, mirroring the
// suffix rule in compareLooseSuffix.
func (v Loose) Compare(o Loose) int {
	if c := compareSegment(v.major, o.major); c != 0 {
		return c
	}

	if c := compareOptionalSegment(v.minor, v.hasMinor, o.minor, o.hasMinor); c != 0 {
		return c
	}

	return compareOptionalSegment(v.patch, v.hasPatch, o.patch, o.hasPatch)
}

func compareOptionalSegment(a Segment, okA bool, b Segment, okB bool) int {
	switch {
	case okA && okB:
		return compareSegment(a, b)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// IsGreaterThan reports whether v sorts after o.
func (v Loose) IsGreaterThan(o Loose) bool { return v.Compare(o) > 0 }

// IsLowerThan reports whether v sorts before o.
func (v Loose) IsLowerThan(o Loose) bool { return v.Compare(o) < 0 }

// IsEqualTo reports structural equality of all three segments.
func (v Loose) IsEqualTo(o Loose) bool {
	return v.major.equal(o.major) &&
		sameOptionalSegment(v.minor, v.hasMinor, o.minor, o.hasMinor) &&
		sameOptionalSegment(v.patch, v.hasPatch, o.patch, o.hasPatch)
}

// IsEquivalentTo equals IsEqualTo; Loose carries no build metadata.
func (v Loose) IsEquivalentTo(o Loose) bool { return v.IsEqualTo(o) }

// Diff returns the coarsest differing segment, or DiffNone.
func (v Loose) Diff(o Loose) Diff {
	switch {
	case !v.major.equal(o.major):
		return DiffMajor
	case !sameOptionalSegment(v.minor, v.hasMinor, o.minor, o.hasMinor):
		return DiffMinor
	case !sameOptionalSegment(v.patch, v.hasPatch, o.patch, o.hasPatch):
		return DiffPatch
	default:
		return DiffNone
	}
}

func sameOptionalSegment(a Segment, okA bool, b Segment, okB bool) bool {
	return okA == okB && (!okA || a.equal(b))
}

// rebuild joins the segments and re-parses them with v's configuration.
func (v Loose) rebuild(major Segment, minor *Segment, patch *Segment) Loose {
	var b strings.Builder
	b.WriteString(major.String())
	if minor != nil {
		b.WriteString(v.sep)
		b.WriteString(minor.String())
	}
	if patch != nil {
		b.WriteString(v.sep)
		b.WriteString(patch.String())
	}

	nv, err := parseLoose(b.String(), looseConfig{sep: v.sep, policy: v.policy})
	if err != nil {
		panic(fmt.Sprintf("version: rebuilding %q: %v", v.value, err))
	}

	return nv
}

func (v Loose) optMinor() *Segment {
	if !v.hasMinor {
		return nil
	}
	s := v.minor

	return &s
}

func (v Loose) optPatch() *Segment {
	if !v.hasPatch {
		return nil
	}
	s := v.patch

	return &s
}

func bumped(s Segment, n uint, keepSuffix bool) Segment {
	s.number = addClamped(s.numberOrZero(), n)
	s.hasNumber = true
	if !keepSuffix {
		s.suffix, s.lead, s.hasSuffix = "", "", false
	}

	return s
}

// WithIncMajor adds n to the major number, keeping its suffix. A non-zero n
// replaces present minor and patch segments with a bare 0.
func (v Loose) WithIncMajor(n uint) Loose {
	if n == 0 {
		return v
	}

	minor, patch := v.optMinor(), v.optPatch()
	if minor != nil {
		z := zeroSegment()
		minor = &z
	}
	if patch != nil {
		z := zeroSegment()
		patch = &z
	}

	return v.rebuild(bumped(v.major, n, true), minor, patch)
}

// WithIncMinor adds n to the minor number (created when absent), keeping its
// suffix. A non-zero n replaces a present patch with a bare 0.
func (v Loose) WithIncMinor(n uint) Loose {
	if n == 0 {
		return v
	}

	minor := bumped(v.minor, n, v.hasMinor)
	patch := v.optPatch()
	if patch != nil {
		z := zeroSegment()
		patch = &z
	}

	return v.rebuild(v.major, &minor, patch)
}

// WithIncPatch adds n to the patch number (created when absent, with a bare
// 0 minor if that is absent too), keeping its suffix.
func (v Loose) WithIncPatch(n uint) Loose {
	if n == 0 {
		return v
	}

	minor := v.optMinor()
	if minor == nil {
		z := zeroSegment()
		minor = &z
	}
	patch := bumped(v.patch, n, v.hasPatch)

	return v.rebuild(v.major, minor, &patch)
}

// NextMajor returns (major+1).0.0 with every suffix cleared.
func (v Loose) NextMajor() Loose {
	z := zeroSegment()
	return v.rebuild(bumped(v.major, 1, false), &z, &z)
}

// NextMinor returns major.(minor+1).0; minor and patch lose their suffixes.
func (v Loose) NextMinor() Loose {
	minor := bumped(v.minor, 1, false)
	z := zeroSegment()

	return v.rebuild(v.major, &minor, &z)
}

// NextPatch returns major.minor.(patch+1); the patch loses its suffix and
// an absent minor becomes a bare 0.
func (v Loose) NextPatch() Loose {
	minor := v.optMinor()
	if minor == nil {
		z := zeroSegment()
		minor = &z
	}
	patch := bumped(v.patch, 1, false)

	return v.rebuild(v.major, minor, &patch)
}
