package verkeep

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/verkeep/version"
)

// ErrConfig is wrapped by every error returned from LoadConfig, ParseConfig
// and Config.Options.
var ErrConfig = errors.New("invalid config")

// Config is the YAML form of Options. Enum fields accept the same aliases
// as the Parse* helpers.
//
//	shape: semver
//	policy: npm
//	releaseOnly: true
//	format: any
//	normalize: true
//	deduplicate: true
//	keep: {major: 3, minor: 2, patch: 1, prevMajorMinor: 1}
//	range: {min: "1.2", max: "4"}
//	sort: desc
type Config struct {
	Keep    *KeepConfig `yaml:"keep,omitempty"`
	Range   RangeConfig `yaml:"range,omitempty"`
	Shape   string      `yaml:"shape,omitempty"`
	Policy  string      `yaml:"policy,omitempty"`
	Depth   string      `yaml:"depth,omitempty"`
	Format  string      `yaml:"format,omitempty"`
	Sort    string      `yaml:"sort,omitempty"`
	VPrefix string      `yaml:"vPrefix,omitempty"`
	Include string      `yaml:"include,omitempty"`
	Exclude string      `yaml:"exclude,omitempty"`

	// Separator splits loose versions. Default ".".
	Separator string `yaml:"separator,omitempty"`

	Limit int `yaml:"limit,omitempty"`

	ReleaseOnly       bool `yaml:"releaseOnly,omitempty"`
	Normalize         bool `yaml:"normalize,omitempty"`
	Deduplicate       bool `yaml:"deduplicate,omitempty"`
	Invert            bool `yaml:"invert,omitempty"`
	Canonical         bool `yaml:"canonical,omitempty"`
	ExcludeSignatures bool `yaml:"excludeSignatures,omitempty"`
	KeepInvalid       bool `yaml:"keepInvalid,omitempty"`
}

// KeepConfig holds retention thresholds. Negative values mean unlimited;
// omitted previous-major thresholds default to minor and patch.
type KeepConfig struct {
	PrevMajorMinor *int `yaml:"prevMajorMinor,omitempty"`
	PrevMajorPatch *int `yaml:"prevMajorPatch,omitempty"`

	Major int `yaml:"major"`
	Minor int `yaml:"minor"`
	Patch int `yaml:"patch"`
}

// RangeConfig is the YAML form of Range.
type RangeConfig struct {
	Min               string `yaml:"min,omitempty"`
	Max               string `yaml:"max,omitempty"`
	MinExclusive      bool   `yaml:"minExclusive,omitempty"`
	MaxExclusive      bool   `yaml:"maxExclusive,omitempty"`
	IncludePrerelease bool   `yaml:"includePrerelease,omitempty"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes YAML from r. Unknown keys are rejected; empty input
// yields the zero Config.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode yaml: %w", ErrConfig, err)
	}

	return cfg, nil
}

// keep returns the thresholds, or false when none were configured.
func (k *KeepConfig) keep() (Keep, bool) {
	if k == nil {
		return Keep{}, false
	}

	out := Keep{
		Major:          unlimitedIfNegative(k.Major),
		Minor:          unlimitedIfNegative(k.Minor),
		Patch:          unlimitedIfNegative(k.Patch),
		PrevMajorMinor: unlimitedIfNegative(k.Minor),
		PrevMajorPatch: unlimitedIfNegative(k.Patch),
	}
	if k.PrevMajorMinor != nil {
		out.PrevMajorMinor = unlimitedIfNegative(*k.PrevMajorMinor)
	}
	if k.PrevMajorPatch != nil {
		out.PrevMajorPatch = unlimitedIfNegative(*k.PrevMajorPatch)
	}

	return out, true
}

func unlimitedIfNegative(n int) int {
	if n < 0 {
		return Unlimited
	}

	return n
}

// Options converts the config into validated Options. Regular expressions
// are compiled and range bounds are parsed against the configured shape.
func (c Config) Options() (Options, error) {
	opt := Options{
		Shape:             ParseShape(c.Shape),
		Policy:            version.ParsePolicy(c.Policy),
		Separator:         c.Separator,
		Depth:             ParseDepth(c.Depth),
		Format:            ParseFormat(c.Format),
		Sort:              ParseSort(c.Sort),
		VPrefix:           ParseVPrefix(c.VPrefix),
		Limit:             c.Limit,
		ReleaseOnly:       c.ReleaseOnly,
		Normalize:         c.Normalize,
		Deduplicate:       c.Deduplicate,
		Invert:            c.Invert,
		OutputCanonical:   c.Canonical,
		ExcludeSignatures: c.ExcludeSignatures,
		KeepInvalid:       c.KeepInvalid,
		Range: Range{
			Min:               strings.TrimSpace(c.Range.Min),
			Max:               strings.TrimSpace(c.Range.Max),
			MinExclusive:      c.Range.MinExclusive,
			MaxExclusive:      c.Range.MaxExclusive,
			IncludePrerelease: c.Range.IncludePrerelease,
		},
	}

	if k, ok := c.Keep.keep(); ok {
		if strings.TrimSpace(c.Depth) != "" && opt.Depth != DepthCustom {
			return Options{}, fmt.Errorf("%w: keep thresholds conflict with depth %q", ErrConfig, c.Depth)
		}
		opt.Depth = DepthCustom
		opt.Keep = k
	} else if opt.Depth == DepthCustom {
		return Options{}, fmt.Errorf("%w: depth %q needs keep thresholds", ErrConfig, c.Depth)
	}

	var err error
	if opt.Include, err = compileRegexp("include", c.Include); err != nil {
		return Options{}, err
	}
	if opt.Exclude, err = compileRegexp("exclude", c.Exclude); err != nil {
		return Options{}, err
	}

	if err := opt.Validate(); err != nil {
		return Options{}, err
	}

	return opt, nil
}

func compileRegexp(name, s string) (*regexp.Regexp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s regexp: %w", ErrConfig, name, err)
	}

	return re, nil
}

// Validate reports range bounds that do not parse under o's shape and
// policy. Select itself leaves such bounds open.
func (o Options) Validate() error {
	o = o.normalized()
	if !o.Range.Enabled() {
		return nil
	}

	var err error
	if o.Shape == ShapeLoose {
		_, _, err = looseShape(o).bounds(o.Range)
	} else {
		_, _, err = semverShape(o).bounds(o.Range)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}
