package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxComponent bounds numeric components; increments saturate there.
const maxComponent = math.MaxInt32

// Flags records which optional parts were present in the parsed string.
type Flags uint8

const (
	// FlagHasMinor is set when the minor component was given.
	FlagHasMinor Flags = 1 << iota
	// FlagHasPatch is set when the patch component was given.
	FlagHasPatch
	// FlagHasBuild is set when +build metadata was given.
	FlagHasBuild
	// FlagWildcard is set when an NPM wildcard (x, X, *) was consumed.
	FlagWildcard
)

// Semver is an immutable MAJOR[.MINOR[.PATCH]][-SUFFIX][+BUILD] value.
// The zero value is not a valid version; use Parse.
type Semver struct {
	value  string
	suffix []string
	build  string

	major, minor, patch int

	flags  Flags
	policy Policy
}

// Parse parses s under policy p.
//
// The input is trimmed; under NPM a single leading 'v' or 'V' is dropped.
// A '-' that occurs before the first '+' (or with no '+' at all) starts the
// pre-release suffix. Failures are *InvalidError values.
func Parse(s string, p Policy) (Semver, error) {
	value := strings.TrimSpace(s)
	if p == PolicyNPM && hasLeadingV(value) {
		value = strings.TrimSpace(value[1:])
	}

	if value == "" {
		return Semver{}, invalid(s, ReasonEmpty)
	}

	v := Semver{value: value, policy: p}

	main, pre, hasPre := splitSuffix(value)
	build, hasBuild := "", false
	if hasPre {
		pre, build, hasBuild = strings.Cut(pre, "+")
	} else {
		main, build, hasBuild = strings.Cut(main, "+")
	}

	if hasBuild {
		if build == "" {
			return Semver{}, invalid(s, ReasonEmptyBuild)
		}
		if strings.Contains(build, "+") {
			return Semver{}, invalid(s, "build cannot contain '+'")
		}
		v.build = build
		v.flags |= FlagHasBuild
	}

	if err := v.parseCore(s, main); err != nil {
		return Semver{}, err
	}

	if hasPre {
		if pre == "" {
			return Semver{}, invalid(s, ReasonEmptySuffix)
		}
		toks := strings.Split(pre, ".")
		for _, t := range toks {
			if t == "" {
				return Semver{}, invalid(s, ReasonInvalidSuffix)
			}
		}
		v.suffix = toks
	}

	return v, nil
}

// MustParse is like Parse but panics on error.
// Only use it for hardcoded strings and tests.
func MustParse(s string, p Policy) Semver {
	v, err := Parse(s, p)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}

	return v
}

// parseCore fills major/minor/patch from the numeric part before any suffix.
func (v *Semver) parseCore(input, main string) error {
	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return invalid(input, ReasonTooMany)
	}

	major, ok := atoi(parts[0])
	if !ok {
		return invalid(input, ReasonNoMajor)
	}
	v.major = major

	reasons := [...]string{ReasonNoMinor, ReasonNoPatch}
	flags := [...]Flags{FlagHasMinor, FlagHasPatch}
	dst := [...]*int{&v.minor, &v.patch}

	for i := range 2 {
		idx := i + 1
		if idx >= len(parts) {
			if v.policy.requiresFull() {
				return invalid(input, reasons[i])
			}
			continue
		}

		tok := parts[idx]
		if v.policy.allowsWildcards() && isWildcard(tok) {
			v.flags |= FlagWildcard
			continue
		}

		n, ok := atoi(tok)
		if !ok {
			return invalid(input, reasons[i])
		}
		*dst[i] = n
		v.flags |= flags[i]
	}

	return nil
}

// splitSuffix splits on the first '-' when it occurs before any '+'.
func splitSuffix(s string) (main, pre string, ok bool) {
	hyphen := strings.IndexByte(s, '-')
	if hyphen < 0 {
		return s, "", false
	}

	plus := strings.IndexByte(s, '+')
	if plus >= 0 && plus < hyphen {
		return s, "", false
	}

	return s[:hyphen], s[hyphen+1:], true
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n > maxComponent {
		return 0, false
	}

	return n, true
}

// addClamped adds n to x, saturating at maxComponent.
func addClamped(x int, n uint) int {
	if uint64(n) >= uint64(maxComponent-x) {
		return maxComponent
	}

	return x + int(n)
}

func isWildcard(s string) bool {
	return s == "x" || s == "X" || s == "*"
}

func hasLeadingV(s string) bool {
	return len(s) > 0 && (s[0] == 'v' || s[0] == 'V')
}

// String returns the trimmed input (without the NPM 'v').
func (v Semver) String() string { return v.value }

// Major returns the major component.
func (v Semver) Major() int { return v.major }

// Minor returns the minor component and whether it was given.
func (v Semver) Minor() (int, bool) { return v.minor, v.HasMinor() }

// Patch returns the patch component and whether it was given.
func (v Semver) Patch() (int, bool) { return v.patch, v.HasPatch() }

// Suffix returns a copy of the pre-release tokens.
func (v Semver) Suffix() []string {
	if len(v.suffix) == 0 {
		return nil
	}

	return append([]string(nil), v.suffix...)
}

// SuffixString returns the pre-release tokens joined with '.'.
func (v Semver) SuffixString() string { return strings.Join(v.suffix, ".") }

// Build returns the build metadata, or "" when absent.
func (v Semver) Build() string { return v.build }

// Policy returns the policy the value was parsed with.
func (v Semver) Policy() Policy { return v.policy }

// Flags returns the presence bitmask.
func (v Semver) Flags() Flags { return v.flags }

// HasMinor reports whether a numeric minor was given.
func (v Semver) HasMinor() bool { return v.flags&FlagHasMinor != 0 }

// HasPatch reports whether a numeric patch was given.
func (v Semver) HasPatch() bool { return v.flags&FlagHasPatch != 0 }

// HasBuild reports whether +build metadata was given.
func (v Semver) HasBuild() bool { return v.flags&FlagHasBuild != 0 }

// HasSuffix reports whether there are pre-release tokens.
func (v Semver) HasSuffix() bool { return len(v.suffix) > 0 }

// IsStable reports whether there are no pre-release tokens.
func (v Semver) IsStable() bool { return !v.HasSuffix() }

// IsRelease reports whether there is neither a suffix nor a build.
func (v Semver) IsRelease() bool { return !v.HasSuffix() && !v.HasBuild() }

// IsZero reports whether v is the zero value.
func (v Semver) IsZero() bool { return v.value == "" }

// Canonical returns "vMAJOR.MINOR.PATCH[-SUFFIX]", defaulting missing tiers
// to 0 and dropping build metadata.
func (v Semver) Canonical() string {
	var b strings.Builder
	b.WriteByte('v')
	b.WriteString(strconv.Itoa(v.major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.patch))
	if len(v.suffix) > 0 {
		b.WriteByte('-')
		b.WriteString(v.SuffixString())
	}

	return b.String()
}
