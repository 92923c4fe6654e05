package verkeep

import (
	"regexp"

	"github.com/woozymasta/verkeep/version"
)

// Options configures the selection pipeline run by Select.
type Options struct {
	// Include positive regex filter applied to the raw tag; only matching tags are kept.
	Include *regexp.Regexp

	// Exclude negative regex filter applied to the raw tag; matching tags are dropped.
	Exclude *regexp.Regexp

	// Range clipping. Applied after parsing and before retention.
	Range Range

	// Keep holds explicit retention thresholds. Used only with DepthCustom.
	Keep Keep

	// Separator splits loose versions into segments. Default ".".
	Separator string

	// Limit caps the output length; 0 means no limit.
	Limit int

	// Shape selects the parser: semantic versions or loose segments.
	Shape Shape

	// Policy is the parse policy for both shapes.
	Policy version.Policy

	// Depth picks a retention preset (patch/minor/major/latest) or DepthCustom.
	Depth Depth

	// Format restricts allowed release forms in ReleaseOnly mode (X/XY/XYZ).
	// Ignored if ReleaseOnly=false. Default is FormatXYZ.
	Format Format

	// Sort defines final output ordering (none/asc/desc).
	Sort SortMode

	// VPrefix controls whether tags must, may, or must not start with a leading 'v'.
	// This only affects input acceptance.
	VPrefix VPrefix

	// ReleaseOnly keeps only release versions: no suffix and no build for
	// semantic versions, no segment suffix for loose ones.
	ReleaseOnly bool

	// Normalize compares shorthand semantic versions (X, X.Y) as X.0.0 / X.Y.0
	// during range clipping, deduplication and retention.
	Normalize bool

	// Deduplicate merges entries that compare equal, keeping the first seen.
	Deduplicate bool

	// Invert returns the complement of the retention decision.
	Invert bool

	// OutputCanonical when true returns vMAJOR.MINOR.PATCH[-SUFFIX] (build
	// stripped) for semantic versions; otherwise the original input tag.
	OutputCanonical bool

	// ExcludeSignatures drops signature-like tags: sha256-<64 hex>.sig
	ExcludeSignatures bool

	// KeepInvalid appends tags that failed to parse after the selection.
	// Ignored when ReleaseOnly is set.
	KeepInvalid bool
}

// normalized returns a copy with implicit defaults applied.
func (o Options) normalized() Options {
	out := o

	// In ReleaseOnly, zero Format defaults to FormatXYZ.
	if out.ReleaseOnly && out.Format == 0 {
		out.Format = FormatXYZ
	}

	if out.Separator == "" {
		out.Separator = version.DefaultSeparator
	}

	if out.ReleaseOnly {
		out.KeepInvalid = false
	}

	return out
}

// retention resolves Depth into retention thresholds.
func (o Options) retention() Keep {
	if o.Depth == DepthCustom {
		return o.Keep
	}

	return o.Depth.Keep()
}

// Shape selects how tags are parsed.
type Shape uint8

const (
	// ShapeSemver parses MAJOR[.MINOR[.PATCH]][-SUFFIX][+BUILD].
	ShapeSemver Shape = iota
	// ShapeLoose parses up to three separator-delimited segments with free suffixes.
	ShapeLoose
)

// String returns a stable textual representation for Shape.
func (s Shape) String() string {
	if s == ShapeLoose {
		return "loose"
	}

	return "semver"
}

// ParseShape maps free-form tokens to Shape.
// Supported aliases (case-insensitive):
//
//	semver: "semver","semantic","sem","s"
//	loose:  "loose","generic","segments","g"
func ParseShape(s string) Shape {
	switch toTok(s) {
	case "loose", "generic", "segments", "g":
		return ShapeLoose
	default:
		return ShapeSemver
	}
}

// Depth picks a retention preset.
type Depth int

const (
	// DepthPatch keeps every entry.
	DepthPatch Depth = iota
	// DepthMinor keeps the latest per (major, minor).
	DepthMinor
	// DepthMajor keeps the latest per major.
	DepthMajor
	// DepthLatest keeps a single latest entry overall.
	DepthLatest
	// DepthCustom uses Options.Keep.
	DepthCustom
)

// String returns a stable textual representation for Depth.
func (d Depth) String() string {
	switch d {
	case DepthLatest:
		return "latest"
	case DepthMajor:
		return "major"
	case DepthMinor:
		return "minor"
	case DepthCustom:
		return "custom"
	default:
		return "patch"
	}
}

// Keep returns the retention thresholds of a preset. DepthCustom and
// DepthPatch both keep everything here; the pipeline substitutes
// Options.Keep for DepthCustom.
func (d Depth) Keep() Keep {
	switch d {
	case DepthLatest:
		return KeepLatest(1, 1, 1)
	case DepthMajor:
		return KeepLatest(Unlimited, 1, 1)
	case DepthMinor:
		return KeepLatest(Unlimited, Unlimited, 1)
	default:
		return KeepAll()
	}
}

// ParseDepth maps free-form tokens to Depth.
// Supported aliases (case-insensitive):
//
//	latest:  "latest","l","head","max","0"
//	major:   "major","maj","x","1"
//	minor:   "minor","min","xy","2"
//	patch:   "patch","pth","xyz","3","all"
//	custom:  "custom","keep","c"
func ParseDepth(s string) Depth {
	switch toTok(s) {
	case "latest", "l", "head", "max", "0":
		return DepthLatest
	case "major", "maj", "x", "1":
		return DepthMajor
	case "minor", "min", "xy", "2":
		return DepthMinor
	case "custom", "keep", "c":
		return DepthCustom
	default:
		return DepthPatch
	}
}

// Format is a bitmask of allowed release forms: X / X.Y / X.Y.Z.
type Format uint8

const (
	// FormatXYZ allows X.Y.Z.
	FormatXYZ Format = 1 << iota
	// FormatXY allows X.Y.
	FormatXY
	// FormatX allows X.
	FormatX
	// FormatAll enables all forms (X, X.Y, X.Y.Z).
	FormatAll = FormatXYZ | FormatXY | FormatX
)

// String returns a canonical textual representation like "x-xy-xyz".
func (f Format) String() string {
	out := make([]string, 0, 3)
	if f&FormatX != 0 {
		out = append(out, "x")
	}

	if f&FormatXY != 0 {
		out = append(out, "xy")
	}

	if f&FormatXYZ != 0 {
		out = append(out, "xyz")
	}

	if len(out) == 0 {
		return "xyz"
	}

	return joinDash(out)
}

// ParseFormat accepts combos:
//
//	single: "x", "xy", "xyz", "1|2|3", "major|minor|patch"
//	combos: "x-xy", "x,xyz", "xy|xyz", "x+xy+xyz"
//	any:    "any", "all", "*", "x-xy-xyz"
func ParseFormat(s string) Format {
	s = toTok(s)
	switch s {
	case "":
		return FormatXYZ
	case "any", "all", "*", "a":
		return FormatAll
	}

	var mask Format
	for _, t := range splitTokens(s) {
		switch t {
		case "x", "1", "major", "maj":
			mask |= FormatX
		case "xy", "2", "minor", "min":
			mask |= FormatXY
		case "xyz", "3", "patch", "pth":
			mask |= FormatXYZ
		}
	}

	if mask == 0 {
		return FormatXYZ
	}

	return mask
}

// formOf classifies v by which tiers carry a number.
func formOf[V version.Version[V]](v V) Format {
	if _, ok := v.Patch(); ok {
		return FormatXYZ
	}

	if _, ok := v.Minor(); ok {
		return FormatXY
	}

	return FormatX
}

// SortMode controls the final output ordering.
type SortMode uint8

const (
	// SortNone preserves the input order.
	SortNone SortMode = iota
	// SortAsc sorts ascending by version (fallback to lexicographic).
	SortAsc
	// SortDesc sorts descending by version (fallback to lexicographic).
	SortDesc
)

// String returns a stable textual representation for SortMode.
func (m SortMode) String() string {
	switch m {
	case SortAsc:
		return "ascending"
	case SortDesc:
		return "descending"
	default:
		return "none"
	}
}

// ParseSort maps strings to SortMode.
// Supported aliases:
//
//	asc:  "asc","ascending","inc","increase","up"
//	desc: "desc","descending","dec","decrease","down"
//	none: "none","default","asis"
func ParseSort(s string) SortMode {
	switch toTok(s) {
	case "asc", "ascending", "inc", "increase", "up":
		return SortAsc
	case "desc", "descending", "dec", "decrease", "down":
		return SortDesc
	default:
		return SortNone
	}
}

// VPrefix controls acceptance of a leading 'v' on input tags.
// It is applied during the cheap pre-filter step before any parsing.
type VPrefix uint8

const (
	// PrefixAny accepts both forms, with or without a leading 'v'.
	PrefixAny VPrefix = iota
	// PrefixV requires a leading 'v'.
	PrefixV
	// PrefixNone forbids a leading 'v'.
	PrefixNone
)

// String returns a stable textual representation for VPrefix.
func (m VPrefix) String() string {
	switch m {
	case PrefixV:
		return "v"
	case PrefixNone:
		return "none"
	default:
		return "any"
	}
}

// ParseVPrefix maps free-form strings to VPrefix.
// Supported aliases (case-insensitive):
//
//	any:  "", "any", "*", "auto"
//	v:    "v", "with-v", "require-v", "required"
//	none: "none", "no-v", "without-v", "forbidden"
func ParseVPrefix(s string) VPrefix {
	switch toTok(s) {
	case "v", "with-v", "require-v", "required":
		return PrefixV
	case "none", "no-v", "without-v", "forbidden":
		return PrefixNone
	default:
		return PrefixAny
	}
}

// acceptVPrefix checks input acceptance rules for leading 'v'/'V'.
func acceptVPrefix(s string, mode VPrefix) bool {
	hasV := len(s) > 0 && (s[0] == 'v' || s[0] == 'V')
	switch mode {
	case PrefixV:
		return hasV
	case PrefixNone:
		return !hasV
	default:
		return true
	}
}
