package version

import (
	"fmt"
	"strconv"
	"strings"
)

// layout is the editable form of a Semver used by the mutators.
type layout struct {
	suffix string
	build  string

	major, minor, patch int
	hasMinor, hasPatch  bool
}

func (v Semver) layout() layout {
	return layout{
		major:    v.major,
		minor:    v.minor,
		patch:    v.patch,
		hasMinor: v.HasMinor(),
		hasPatch: v.HasPatch(),
		suffix:   v.SuffixString(),
		build:    v.build,
	}
}

func (l layout) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(l.major))

	switch {
	case l.hasMinor:
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(l.minor))
	case l.hasPatch:
		// only reachable for NPM "1.x.3"
		b.WriteString(".x")
	}

	if l.hasPatch {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(l.patch))
	}

	if l.suffix != "" {
		b.WriteByte('-')
		b.WriteString(l.suffix)
	}

	if l.build != "" {
		b.WriteByte('+')
		b.WriteString(l.build)
	}

	return b.String()
}

// rebuild re-validates l through Parse under v's policy.
func (v Semver) rebuild(l layout) (Semver, error) {
	return Parse(l.String(), v.policy)
}

// mustRebuild is rebuild for layouts assembled from already valid parts.
func (v Semver) mustRebuild(l layout) Semver {
	nv, err := v.rebuild(l)
	if err != nil {
		panic(fmt.Sprintf("version: rebuilding %q: %v", v.value, err))
	}

	return nv
}

// WithIncMajor adds n to major. A non-zero n resets a present minor and
// patch to 0 and clears the suffix; the build is kept.
func (v Semver) WithIncMajor(n uint) Semver {
	if n == 0 {
		return v
	}

	l := v.layout()
	l.major = addClamped(l.major, n)
	l.minor, l.patch = 0, 0
	l.suffix = ""

	return v.mustRebuild(l)
}

// WithIncMinor adds n to minor (an absent minor counts as 0). A non-zero n
// resets a present patch to 0 and clears the suffix; the build is kept.
func (v Semver) WithIncMinor(n uint) Semver {
	if n == 0 {
		return v
	}

	l := v.layout()
	l.minor = addClamped(l.minor, n)
	l.hasMinor = true
	l.patch = 0
	l.suffix = ""

	return v.mustRebuild(l)
}

// WithIncPatch adds n to patch (an absent patch counts as 0, an absent
// minor becomes 0). A non-zero n clears the suffix; the build is kept.
func (v Semver) WithIncPatch(n uint) Semver {
	if n == 0 {
		return v
	}

	l := v.layout()
	l.patch = addClamped(l.patch, n)
	l.hasMinor, l.hasPatch = true, true
	l.suffix = ""

	return v.mustRebuild(l)
}

// NextMajor returns (major+1).0.0 with suffix and build cleared.
func (v Semver) NextMajor() Semver {
	return v.mustRebuild(layout{
		major:    addClamped(v.major, 1),
		hasMinor: true,
		hasPatch: true,
	})
}

// NextMinor returns major.(minor+1).0 with suffix and build cleared.
// An absent minor becomes 1.
func (v Semver) NextMinor() Semver {
	return v.mustRebuild(layout{
		major:    v.major,
		minor:    addClamped(v.minor, 1),
		hasMinor: true,
		hasPatch: true,
	})
}

// NextPatch returns major.minor.(patch+1) with suffix and build cleared.
// An absent patch becomes 1 and an absent minor becomes 0.
func (v Semver) NextPatch() Semver {
	return v.mustRebuild(layout{
		major:    v.major,
		minor:    v.minor,
		patch:    addClamped(v.patch, 1),
		hasMinor: true,
		hasPatch: true,
	})
}

// WithClearedSuffix drops the pre-release tokens.
func (v Semver) WithClearedSuffix() Semver {
	if !v.HasSuffix() {
		return v
	}

	l := v.layout()
	l.suffix = ""

	return v.mustRebuild(l)
}

// WithClearedBuild drops the build metadata.
func (v Semver) WithClearedBuild() Semver {
	if !v.HasBuild() {
		return v
	}

	l := v.layout()
	l.build = ""

	return v.mustRebuild(l)
}

// WithClearedSuffixAndBuild drops both the pre-release tokens and the build.
func (v Semver) WithClearedSuffixAndBuild() Semver {
	if v.IsRelease() {
		return v
	}

	l := v.layout()
	l.suffix, l.build = "", ""

	return v.mustRebuild(l)
}

// WithSuffix replaces the pre-release tokens with the '.'-separated s.
func (v Semver) WithSuffix(s string) (Semver, error) {
	if s == "" {
		return Semver{}, invalid(s, ReasonEmptySuffix)
	}

	if strings.ContainsRune(s, '+') {
		return Semver{}, invalid(s, ReasonInvalidSuffix)
	}

	l := v.layout()
	l.suffix = s

	return v.rebuild(l)
}

// WithBuild replaces the build metadata with b.
func (v Semver) WithBuild(b string) (Semver, error) {
	if b == "" {
		return Semver{}, invalid(b, ReasonEmptyBuild)
	}

	l := v.layout()
	l.build = b

	return v.rebuild(l)
}

// ToStrict re-parses v under Strict, defaulting missing minor and patch to 0.
func (v Semver) ToStrict() Semver {
	l := v.layout()
	l.hasMinor, l.hasPatch = true, true

	nv, err := Parse(l.String(), PolicyStrict)
	if err != nil {
		panic(fmt.Sprintf("version: converting %q to strict: %v", v.value, err))
	}

	return nv
}
