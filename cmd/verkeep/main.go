/*
Package main is the verkeep cli tool: it reads version tags from stdin,
selects the ones to keep and prints them one per line.
*/
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/verkeep"
	"github.com/woozymasta/verkeep/internal/logging"
	"github.com/woozymasta/verkeep/version"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

const (
	exitOK    = 0
	exitFlags = 1
	exitIO    = 2
)

type Options struct {
	// betteralign:ignore

	OptionsGeneral   OptionsGeneral   `group:"General"`
	OptionsParse     OptionsParse     `group:"Parsing and releases"`
	OptionsRetention OptionsRetention `group:"Retention"`
	OptionsFilter    OptionsFilter    `group:"Input filters"`
	OptionsRange     OptionsRange     `group:"Range"`
	OptionsOutput    OptionsOutput    `group:"Output"`
}

type OptionsGeneral struct {
	Config   string `short:"C" long:"config"    description:"YAML policy file; flags override its values"`
	LogLevel string `short:"L" long:"log-level" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"LOG_LEVEL" default:"info"`
}

type OptionsParse struct {
	Shape       string `short:"s" long:"shape"        description:"Version shape" choice:"semver" choice:"loose"`
	Policy      string `short:"P" long:"policy"       description:"Parse policy" choice:"strict" choice:"loose" choice:"npm" choice:"ivy"`
	Separator   string `short:"t" long:"separator"    description:"Segment separator for loose versions"`
	ReleaseOnly bool   `short:"r" long:"release-only" description:"Drop versions with suffix or build"`
	Format      string `short:"f" long:"format"       description:"Allowed release forms" choice:"x" choice:"xy" choice:"xyz" choice:"x-xy" choice:"x-xyz" choice:"xy-xyz" choice:"any"`
	Normalize   bool   `short:"N" long:"normalize"    description:"Compare X / X.Y as X.0.0 / X.Y.0"`
	Deduplicate bool   `short:"d" long:"deduplicate"  description:"Collapse versions that compare equal"`
}

type OptionsRetention struct {
	Depth     string `short:"D" long:"depth"           description:"Retention preset" choice:"patch" choice:"minor" choice:"major" choice:"latest" choice:"custom"`
	Major     int    `long:"keep-major"                description:"Majors to keep (-1 = unlimited)"`
	Minor     int    `long:"keep-minor"                description:"Minors to keep per major (-1 = unlimited)"`
	Patch     int    `long:"keep-patch"                description:"Versions to keep per minor (-1 = unlimited)"`
	PrevMinor int    `long:"keep-prev-minor"           description:"Minors to keep per older major (default: --keep-minor)"`
	PrevPatch int    `long:"keep-prev-patch"           description:"Versions to keep per minor of older majors (default: --keep-patch)"`
	Invert    bool   `short:"I" long:"invert"          description:"Print the versions that would be dropped"`
}

type OptionsFilter struct {
	VPrefixMode string `short:"V" long:"v-prefix"     description:"Policy for leading 'v' in tags" choice:"any" choice:"v" choice:"none"`
	Include     string `short:"i" long:"include"      description:"Regexp to keep tags (applied before parsing)"`
	Exclude     string `short:"e" long:"exclude"      description:"Regexp to drop tags (applied before parsing)"`
	ExcludeSigs bool   `short:"E" long:"exclude-sigs" description:"Drop sha256-<64>.sig tags"`
}

type OptionsRange struct {
	Min             string `short:"m" long:"min"                description:"Lower bound (X / X.Y / X.Y.Z or full version)"`
	Max             string `short:"x" long:"max"                description:"Upper bound (X / X.Y / X.Y.Z or full version)"`
	MinExclusive    bool   `short:"M" long:"min-exclusive"      description:"Exclude lower bound itself"`
	MaxExclusive    bool   `short:"X" long:"max-exclusive"      description:"Exclude upper bound itself"`
	IncludePreAtMin bool   `short:"p" long:"include-prerelease" description:"When min is shorthand, include prereleases at the floor (>= X.Y.0-0)"`
}

type OptionsOutput struct {
	Canonical   bool   `short:"c" long:"canonical-out" description:"Print canonical vMAJOR.MINOR.PATCH[-SUFFIX] (drop +BUILD)"`
	SortMode    string `short:"S" long:"sort"          description:"Sort output tags" choice:"none" choice:"asc" choice:"desc"`
	Limit       int    `short:"n" long:"limit"         description:"Max number of output tags (<=0 = unlimited)"`
	KeepInvalid bool   `short:"k" long:"keep-invalid"  description:"Append unparsable tags after the selection"`
	ShowInvalid bool   `long:"show-invalid"            description:"Log unparsable tags as warnings"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt Options
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash|flags.AllowBoolValues)
	parser.Name = "verkeep"
	parser.LongDescription = `verkeep selects versions to keep from a tag list.
Reads tags from stdin (one per line), parses them as semantic or loose versions,
applies filters, range clipping and per-major/minor/patch retention thresholds,
and prints the selection to stdout.`

	if _, err := parser.ParseArgs(args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return exitOK
		}

		fmt.Fprintln(stderr, err)
		return exitFlags
	}

	log := logging.NewJSONLogger(stderr, parser.Name, buildVersion, opt.OptionsGeneral.LogLevel)

	in, err := readTags(stdin)
	if err != nil {
		log.Error("read stdin", "error", err)
		return exitIO
	}

	sel, err := opt.selection(parser)
	if err != nil {
		log.Error("build options", "error", err)
		return exitIO
	}

	out, invalid := verkeep.SelectWithInvalid(in, sel)
	if opt.OptionsOutput.ShowInvalid {
		for _, s := range invalid {
			log.Warn("invalid version", "input", s)
		}
	}

	log.Debug("selection done",
		"input", len(in),
		"selected", len(out),
		"invalid", len(invalid),
		"shape", sel.Shape.String(),
		"policy", sel.Policy.String(),
		"depth", sel.Depth.String(),
	)

	w := bufio.NewWriter(stdout)
	for _, t := range out {
		fmt.Fprintln(w, t)
	}
	if err := w.Flush(); err != nil {
		log.Error("write stdout", "error", err)
		return exitIO
	}

	return exitOK
}

// readTags reads stdin line by line, ignoring empty lines.
func readTags(r io.Reader) ([]string, error) {
	in := make([]string, 0, 1024)
	sc := bufio.NewScanner(r)
	const maxLine = 10 * 1024 * 1024
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			in = append(in, s)
		}
	}

	return in, sc.Err()
}

// selection starts from the config file (or verkeep.DefaultOptions) and
// overrides every field whose flag was given on the command line.
func (o *Options) selection(parser *flags.Parser) (verkeep.Options, error) {
	base := verkeep.DefaultOptions()
	if path := strings.TrimSpace(o.OptionsGeneral.Config); path != "" {
		loaded, err := verkeep.LoadConfig(path)
		if err != nil {
			return verkeep.Options{}, err
		}

		if base, err = loaded.Options(); err != nil {
			return verkeep.Options{}, err
		}
	}

	set := func(long string) bool {
		opt := parser.FindOptionByLongName(long)
		return opt != nil && opt.IsSet() && !opt.IsSetDefault()
	}

	p, r, f, rg, out := o.OptionsParse, o.OptionsRetention, o.OptionsFilter, o.OptionsRange, o.OptionsOutput

	if set("shape") {
		base.Shape = verkeep.ParseShape(p.Shape)
	}
	if set("policy") {
		base.Policy = version.ParsePolicy(p.Policy)
	}
	if set("separator") {
		base.Separator = p.Separator
	}
	if set("release-only") {
		base.ReleaseOnly = p.ReleaseOnly
	}
	if set("format") {
		base.Format = verkeep.ParseFormat(p.Format)
	}
	if set("normalize") {
		base.Normalize = p.Normalize
	}
	if set("deduplicate") {
		base.Deduplicate = p.Deduplicate
	}

	keepSet := slices.ContainsFunc(keepFlags, set)
	if set("depth") {
		d := verkeep.ParseDepth(r.Depth)
		switch {
		case keepSet && d != verkeep.DepthCustom:
			return verkeep.Options{}, fmt.Errorf("%w: --keep-* flags conflict with depth %q", verkeep.ErrConfig, r.Depth)
		case d == verkeep.DepthCustom && !keepSet && base.Depth != verkeep.DepthCustom:
			return verkeep.Options{}, fmt.Errorf("%w: depth custom needs --keep-* thresholds", verkeep.ErrConfig)
		}
		base.Depth = d
	}
	if keepSet {
		if base.Depth != verkeep.DepthCustom {
			base.Keep = base.Depth.Keep()
			base.Depth = verkeep.DepthCustom
		}
		base.Keep = r.override(base.Keep, set)
	}
	if set("invert") {
		base.Invert = r.Invert
	}

	if set("v-prefix") {
		base.VPrefix = verkeep.ParseVPrefix(f.VPrefixMode)
	}
	if set("exclude-sigs") {
		base.ExcludeSignatures = f.ExcludeSigs
	}

	var err error
	if set("include") {
		if base.Include, err = compileFlag("include", f.Include); err != nil {
			return verkeep.Options{}, err
		}
	}
	if set("exclude") {
		if base.Exclude, err = compileFlag("exclude", f.Exclude); err != nil {
			return verkeep.Options{}, err
		}
	}

	if set("min") {
		base.Range.Min = strings.TrimSpace(rg.Min)
	}
	if set("max") {
		base.Range.Max = strings.TrimSpace(rg.Max)
	}
	if set("min-exclusive") {
		base.Range.MinExclusive = rg.MinExclusive
	}
	if set("max-exclusive") {
		base.Range.MaxExclusive = rg.MaxExclusive
	}
	if set("include-prerelease") {
		base.Range.IncludePrerelease = rg.IncludePreAtMin
	}

	if set("canonical-out") {
		base.OutputCanonical = out.Canonical
	}
	if set("sort") {
		base.Sort = verkeep.ParseSort(out.SortMode)
	}
	if set("limit") {
		base.Limit = out.Limit
	}
	if set("keep-invalid") {
		base.KeepInvalid = out.KeepInvalid
	}

	if err := base.Validate(); err != nil {
		return verkeep.Options{}, err
	}

	return base, nil
}

var keepFlags = []string{"keep-major", "keep-minor", "keep-patch", "keep-prev-minor", "keep-prev-patch"}

// override applies the given --keep-* flags on top of k. Unset previous-major
// thresholds follow --keep-minor and --keep-patch when those are given.
func (r OptionsRetention) override(k verkeep.Keep, set func(string) bool) verkeep.Keep {
	if set("keep-major") {
		k.Major = unlimitedIfNegative(r.Major)
	}
	if set("keep-minor") {
		k.Minor = unlimitedIfNegative(r.Minor)
		k.PrevMajorMinor = k.Minor
	}
	if set("keep-patch") {
		k.Patch = unlimitedIfNegative(r.Patch)
		k.PrevMajorPatch = k.Patch
	}
	if set("keep-prev-minor") {
		k.PrevMajorMinor = unlimitedIfNegative(r.PrevMinor)
	}
	if set("keep-prev-patch") {
		k.PrevMajorPatch = unlimitedIfNegative(r.PrevPatch)
	}

	return k
}

func unlimitedIfNegative(n int) int {
	if n < 0 {
		return verkeep.Unlimited
	}

	return n
}

func compileFlag(name, s string) (*regexp.Regexp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", verkeep.ErrConfig, name, err)
	}

	return re, nil
}
