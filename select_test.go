package verkeep

import (
	"regexp"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/woozymasta/verkeep/version"
)

func TestConvert_EndToEnd(t *testing.T) {
	t.Parallel()

	valid, invalid := Convert([]string{"1.2.0", "1.2.3", "1.2.3-rc1", "bad", "1.2.2"}, version.PolicyStrict)

	if diff := cmp.Diff([]string{"bad"}, invalid); diff != "" {
		t.Fatalf("invalid mismatch (-want +got):\n%s", diff)
	}

	want := []string{"1.2.3", "1.2.3-rc1", "1.2.2", "1.2.0"}
	if diff := cmp.Diff(want, Strings(valid)); diff != "" {
		t.Fatalf("valid mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_InvalidSortedAndPolicyApplied(t *testing.T) {
	t.Parallel()

	in := []string{"z", "1.2", "v1.0.0", "a", "1.2.3"}

	valid, invalid := Convert(in, version.PolicyStrict)
	if diff := cmp.Diff([]string{"1.2", "a", "v1.0.0", "z"}, invalid); diff != "" {
		t.Fatalf("strict invalid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1.2.3"}, Strings(valid)); diff != "" {
		t.Fatalf("strict valid mismatch (-want +got):\n%s", diff)
	}

	valid, invalid = Convert(in, version.PolicyNPM)
	if diff := cmp.Diff([]string{"a", "z"}, invalid); diff != "" {
		t.Fatalf("npm invalid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1.2.3", "1.2", "1.0.0"}, Strings(valid)); diff != "" {
		t.Fatalf("npm valid mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertLoose(t *testing.T) {
	t.Parallel()

	valid, invalid := ConvertLoose(
		[]string{"1-2-3", "1-2-3a", "x-1", "2-0"},
		version.WithSeparator("-"), version.WithPolicy(version.PolicyLoose),
	)

	if diff := cmp.Diff([]string{"x-1"}, invalid); diff != "" {
		t.Fatalf("invalid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2-0", "1-2-3", "1-2-3a"}, Strings(valid)); diff != "" {
		t.Fatalf("valid mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect_DepthPresets(t *testing.T) {
	t.Parallel()

	in := []string{
		"1.0.0", "1.0.1", "1.1.0", "1.1.1",
		"2.0.0", "2.0.1", "2.1.0",
	}

	base := Options{
		Policy:      version.PolicyStrict,
		ReleaseOnly: true,
		Format:      FormatXYZ,
	}

	cases := []struct {
		depth Depth
		sort  SortMode
		want  []string
	}{
		{DepthPatch, SortNone, in},
		{DepthMinor, SortDesc, []string{"2.1.0", "2.0.1", "1.1.1", "1.0.1"}},
		{DepthMajor, SortDesc, []string{"2.1.0", "1.1.1"}},
		{DepthLatest, SortDesc, []string{"2.1.0"}},
		{DepthMajor, SortAsc, []string{"1.1.1", "2.1.0"}},
		{DepthMinor, SortNone, []string{"1.0.1", "1.1.1", "2.0.1", "2.1.0"}},
	}

	for _, tc := range cases {
		opt := base
		opt.Depth = tc.depth
		opt.Sort = tc.sort
		if diff := cmp.Diff(tc.want, Select(in, opt)); diff != "" {
			t.Fatalf("%v/%v mismatch (-want +got):\n%s", tc.depth, tc.sort, diff)
		}
	}
}

func TestSelect_CustomKeepAndInvert(t *testing.T) {
	t.Parallel()

	opt := Options{
		Policy: version.PolicyStrict,
		Depth:  DepthCustom,
		Keep:   KeepLatest(1, 2, 2),
		Sort:   SortDesc,
	}

	got := Select(retentionList, opt)
	want := []string{"2.2.1", "2.2.0", "2.1.2", "2.1.1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keep mismatch (-want +got):\n%s", diff)
	}

	opt.Invert = true
	dropped := Select(retentionList, opt)
	if len(dropped)+len(got) != len(retentionList) {
		t.Fatalf("invert got %d entries; want %d", len(dropped), len(retentionList)-len(got))
	}
	for _, s := range got {
		if slices.Contains(dropped, s) {
			t.Fatalf("%q is both kept and dropped", s)
		}
	}
}

func TestSelect_NormalizeMergesShorthands(t *testing.T) {
	t.Parallel()

	in := []string{"v1.2", "1.2.0", "1", "1.0.0", "2"}
	opt := Options{
		Policy:          version.PolicyNPM,
		Normalize:       true,
		Deduplicate:     true,
		Sort:            SortDesc,
		OutputCanonical: true,
	}

	got := Select(in, opt)
	want := []string{"v2.0.0", "v1.2.0", "v1.0.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	// without Normalize the shorthands stay distinct
	opt.Normalize = false
	if got := Select(in, opt); len(got) != 5 {
		t.Fatalf("got %v; want 5 entries", got)
	}
}

func TestSelect_WithInvalid(t *testing.T) {
	t.Parallel()

	in := []string{"2.0.0", "latest", "1.0.0", "edge", "1.0.0.1", sigTag()}
	opt := Options{Policy: version.PolicyStrict, Sort: SortDesc, ExcludeSignatures: true}

	sel, invalid := SelectWithInvalid(in, opt)
	eqStrings(t, sel, []string{"2.0.0", "1.0.0"})
	eqStrings(t, invalid, []string{"1.0.0.1", "edge", "latest"})

	opt.KeepInvalid = true
	eqStrings(t, Select(in, opt), []string{"2.0.0", "1.0.0", "1.0.0.1", "edge", "latest"})

	// ReleaseOnly never carries invalid tags through
	opt.ReleaseOnly = true
	eqStrings(t, Select(in, opt), []string{"2.0.0", "1.0.0"})
}

func TestSelect_Empty(t *testing.T) {
	t.Parallel()

	if got := Select(nil, DefaultOptions()); got != nil {
		t.Fatalf("got %v; want nil", got)
	}

	opt := Options{VPrefix: PrefixV}
	sel, invalid := SelectWithInvalid([]string{"1.0.0"}, opt)
	if sel != nil || invalid != nil {
		t.Fatalf("got %v / %v; want nil / nil", sel, invalid)
	}
}

func TestSelect_VPrefix(t *testing.T) {
	t.Parallel()

	in := []string{"v1.2.3", "1.2.3", "v1.2.3-alpha"}
	base := Options{Policy: version.PolicyStrict, ReleaseOnly: true, Format: FormatXYZ}

	cases := map[VPrefix][]string{
		PrefixV:    {"v1.2.3"},
		PrefixNone: {"1.2.3"},
		PrefixAny:  {"v1.2.3", "1.2.3"},
	}

	for mode, want := range cases {
		opt := base
		opt.VPrefix = mode
		if diff := cmp.Diff(want, Filter(in, opt)); diff != "" {
			t.Fatalf("%v mismatch (-want +got):\n%s", mode, diff)
		}
	}
}

func TestSelect_IncludeExclude(t *testing.T) {
	t.Parallel()

	in := []string{"1.0.0-alpine", "1.0.0", "1.1.0-alpine", "1.1.0", "1.2.0-win"}
	opt := Options{
		Policy:  version.PolicyStrict,
		Include: regexp.MustCompile(`-alpine$`),
		Sort:    SortDesc,
	}

	eqStrings(t, Select(in, opt), []string{"1.1.0-alpine", "1.0.0-alpine"})

	opt.Include = nil
	opt.Exclude = regexp.MustCompile(`-(alpine|win)$`)
	eqStrings(t, Select(in, opt), []string{"1.1.0", "1.0.0"})
}

func TestSelect_Limit(t *testing.T) {
	t.Parallel()

	in := []string{"2.0.0", "1.0.0", "1.0.1", "1.0.2", "1.0.3"}
	opt := Options{Policy: version.PolicyStrict, ReleaseOnly: true, Limit: 2}

	// input order
	eqStrings(t, Filter(in, opt), []string{"2.0.0", "1.0.0"})

	opt.Sort = SortDesc
	eqStrings(t, Select(in, opt), []string{"2.0.0", "1.0.3"})

	opt.Limit = 0
	eqStrings(t, Filter(in, opt), in)
}

func TestSelect_Loose(t *testing.T) {
	t.Parallel()

	in := []string{
		"5.4.2.Final", "5.4.1.Final", "5.3.0.Final", "5.4.2.CR1",
		"6.0.0.Alpha1", "6.0.0.Final", "4.3.11.Final", "garbage",
	}

	opt := Options{
		Shape:  ShapeLoose,
		Policy: version.PolicyLoose,
		Depth:  DepthMajor,
		Sort:   SortDesc,
	}

	sel, invalid := SelectWithInvalid(in, opt)
	eqStrings(t, invalid, []string{"garbage"})
	// reverse suffix order: "Alpha1" outranks "Final" and "CR1" outranks "Final"
	eqStrings(t, sel, []string{"6.0.0.Alpha1", "5.4.2.CR1", "4.3.11.Final"})
}

func TestSelect_LooseSeparator(t *testing.T) {
	t.Parallel()

	opt := Options{
		Shape:     ShapeLoose,
		Policy:    version.PolicyStrict,
		Separator: "_",
		Sort:      SortAsc,
	}

	sel, invalid := SelectWithInvalid([]string{"1_10_0", "1_2_0", "1_2", "1.2.0"}, opt)
	eqStrings(t, sel, []string{"1_2_0", "1_10_0"})
	eqStrings(t, invalid, []string{"1.2.0", "1_2"})
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	raw := []string{
		"v1.2.2", "v1.2.3", "1.2.4", "1.2", "1", "1.3.0-alpha.1", sigTag(),
		"v2.0.0+build.1", "2.0", "v2", "someval", "001.100.01", "1.2.3.4.5", "1.1.2",
	}

	// "2.0" and "v2" collapse to the first seen; leading zeros are accepted
	eqStrings(t, Releases(raw), []string{"2.0", "001.100.01", "1.2.4", "1.1.2", "1"})
	eqStrings(t, ReleasesCanonical(raw), []string{"v2.0.0", "v1.100.1", "v1.2.4", "v1.1.2", "v1.0.0"})
	eqStrings(t, LatestPerMajor(raw), []string{"2.0", "001.100.01"})
	eqStrings(t, Latest(raw), []string{"2.0"})
}
