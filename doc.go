/*
Package verkeep selects which versions of a release history to keep.

It works on plain strings (git tags, image tags, artifact versions) and is
network-agnostic. Parsing and comparison live in the version subpackage;
this package runs the selection pipeline on top of it:

 1. Cheap prefilter on raw strings: VPrefix, Include/Exclude regexps and
    cosign signature tags.
 2. Parse once, either as semantic versions (ShapeSemver) under a
    version.Policy or as separator-delimited loose versions (ShapeLoose).
 3. ReleaseOnly/Format gate, Normalize (X and X.Y compare as X.0.0 and
    X.Y.0), Range clipping and Deduplicate.
 4. Retention: newest first, keep up to Keep.Major majors, Keep.Minor
    minors per major and Keep.Patch entries per minor. Older majors may use
    their own PrevMajorMinor/PrevMajorPatch thresholds. Invert returns the
    complement.
 5. Sort, render raw or canonical, append invalid strings on request, Limit.

Depth presets cover the common cases (DepthLatest, DepthMajor, DepthMinor,
DepthPatch); DepthCustom uses Options.Keep. Retain works directly on parsed
values, and Config loads the same options from YAML.

Usage example:

	raw := []string{
		"v1.2.2", "v1.2.3", "1.2.4", "1.2", "1", "1.3.0-alpha.1", "sha256-xxx.sig",
		"v2.0.0+build.1", "2.0", "v2", "someval", "001.100.01", "1.2.3.4.5", "1.1.2",
	}

	res := verkeep.Select(raw, verkeep.Options{
		Policy:            version.PolicyNPM,  // accept X, X.Y and a leading 'v'
		ReleaseOnly:       true,               // drop pre-releases and builds
		Format:            verkeep.FormatAll,  // permit X, X.Y, X.Y.Z
		Normalize:         true,               // "2.0" and "v2" compare as 2.0.0
		Deduplicate:       true,               // keep the first of equal versions
		OutputCanonical:   true,               // print vX.Y.Z
		ExcludeSignatures: true,               // drop sha256-<64 hex>.sig tags early
		Exclude:           regexp.MustCompile(`4$`),
		Depth:             verkeep.DepthMinor, // latest per (major, minor)
		Sort:              verkeep.SortDesc,
	})

	fmt.Println(res) // [v2.0.0 v1.100.1 v1.2.3 v1.1.2 v1.0.0]

Converting without selection:

	valid, invalid := verkeep.Convert([]string{"1.2.0", "1.2.3-rc1", "bad"}, version.PolicyStrict)
	fmt.Println(verkeep.Strings(valid), invalid) // [1.2.3-rc1 1.2.0] [bad]
*/
package verkeep
