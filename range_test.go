package verkeep

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/woozymasta/verkeep/version"
)

// baseRangeOpt keeps prereleases and builds, keeps all entries in input order.
func baseRangeOpt() Options {
	return Options{
		Policy:            version.PolicyStrict,
		ExcludeSignatures: true,
		Depth:             DepthPatch,
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		r    Range
		want []string
	}{
		{
			name: "min shorthand excludes floor prerelease",
			in:   []string{"1.2.0-alpha", "1.2.0", "1.1.9", "1.3.0"},
			r:    Range{Min: "1.2"},
			want: []string{"1.2.0", "1.3.0"},
		},
		{
			name: "min shorthand with prerelease floor",
			in:   []string{"1.2.0-alpha", "1.2.0", "1.1.9", "1.3.0"},
			r:    Range{Min: "1.2", IncludePrerelease: true},
			want: []string{"1.2.0-alpha", "1.2.0", "1.3.0"},
		},
		{
			name: "max shorthand inclusive stops before next minor",
			in:   []string{"1.1.9", "1.2.0-alpha", "1.2.9", "1.3.0-rc1", "1.3.0"},
			r:    Range{Max: "1.2"},
			want: []string{"1.1.9", "1.2.0-alpha", "1.2.9"},
		},
		{
			name: "max major shorthand inclusive",
			in:   []string{"1.9.9", "2.0.0-rc.1", "2.99.0", "3.0.0-0", "3.0.0"},
			r:    Range{Max: "v2"},
			want: []string{"1.9.9", "2.0.0-rc.1", "2.99.0"},
		},
		{
			name: "max shorthand exclusive",
			in:   []string{"1.1.9", "1.2.0-alpha", "1.2.0"},
			r:    Range{Max: "1.2", MaxExclusive: true},
			want: []string{"1.1.9"},
		},
		{
			name: "max full exclusive",
			in:   []string{"1.2.2", "1.2.3-rc1", "1.2.3", "1.2.4-0"},
			r:    Range{Max: "1.2.3", MaxExclusive: true},
			want: []string{"1.2.2", "1.2.3-rc1"},
		},
		{
			name: "max full inclusive admits builds of the bound",
			in:   []string{"1.2.3", "1.2.3+build.1", "1.2.4-0", "1.2.4"},
			r:    Range{Max: "1.2.3"},
			want: []string{"1.2.3", "1.2.3+build.1"},
		},
		{
			name: "max prerelease inclusive",
			in:   []string{"1.2.3-alpha", "1.2.3-alpha.1", "1.2.3-beta"},
			r:    Range{Max: "1.2.3-alpha"},
			want: []string{"1.2.3-alpha"},
		},
		{
			name: "both bounds",
			in:   []string{"0.9.9", "1.0.0-alpha", "1.5.0", "2.0.0", "2.0.1-rc1"},
			r:    Range{Min: "1", IncludePrerelease: true, Max: "2.0.0"},
			want: []string{"1.0.0-alpha", "1.5.0", "2.0.0"},
		},
		{
			name: "min full exclusive treats builds as equal",
			in:   []string{"1.2.3", "1.2.3+build.1", "1.2.4-0"},
			r:    Range{Min: "1.2.3", MinExclusive: true},
			want: []string{"1.2.4-0"},
		},
		{
			name: "unparsable bound is ignored",
			in:   []string{"1.0.0", "2.0.0"},
			r:    Range{Min: "nope", Max: "1.5"},
			want: []string{"1.0.0"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opt := baseRangeOpt()
			opt.Range = tc.r
			got := Filter(tc.in, opt)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Shorthand candidates meet shorthand floors without Normalize.
func TestRange_ShorthandCandidates(t *testing.T) {
	t.Parallel()

	opt := baseRangeOpt()
	opt.Policy = version.PolicyNPM
	opt.Range = Range{Min: "1.2", Max: "1.2"}

	got := Filter([]string{"1.1", "1.2", "1.2.5", "1.3", "1"}, opt)
	want := []string{"1.2", "1.2.5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRange_Loose(t *testing.T) {
	t.Parallel()

	opt := Options{
		Shape:  ShapeLoose,
		Policy: version.PolicyLoose,
		Range: Range{Min: "1.2", Max: "3.2.2", MaxExclusive: true},
	}

	got := Filter([]string{"1.1", "1.2", "1.2a", "2.0.Final", "3.2.2", "3.2.2.Final"}, opt)
	// "1.2a" sorts below "1.2"; "3.2.2.Final" sorts below "3.2.2".
	want := []string{"1.2", "2.0.Final", "3.2.2.Final"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileSemverRange_Errors(t *testing.T) {
	t.Parallel()

	lo, hi, err := compileSemverRange(Range{Min: "x.y", Max: "1.2.3"})
	if !errors.Is(err, version.ErrInvalidVersion) {
		t.Fatalf("err = %v; want ErrInvalidVersion", err)
	}
	if lo.ok {
		t.Fatalf("broken floor must stay disabled")
	}
	if !hi.ok || !hi.exclusive || hi.v.String() != "1.2.4-0" {
		t.Fatalf("ceiling = %+v; want exclusive 1.2.4-0", hi)
	}

	if _, _, err := compileSemverRange(Range{Min: "1", Max: "2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
